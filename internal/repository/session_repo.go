package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/J1nSakai/mindbridge/internal/models"
)

// Caps on the session lists fed into the derived-statistics calculators.
const (
	sessionHistoryLimit = 100
	topicSessionLimit   = 50
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Create(ctx context.Context, s *models.StudySession) error {
	query := `
		INSERT INTO study_sessions (
			id, user_id, topic, type, duration, score, accuracy,
			questions_answered, correct_answers, total_questions,
			generated_summary, flash_cards, quiz_data, selected_quiz_answers
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at`

	s.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		s.ID, s.UserID, s.Topic, s.Type, s.Duration, s.Score, s.Accuracy,
		s.QuestionsAnswered, s.CorrectAnswers, s.TotalQuestions,
		s.GeneratedSummary, s.FlashCards, s.QuizData, s.SelectedQuizAnswers,
	).Scan(&s.CreatedAt)
}

const sessionColumns = `id, user_id, topic, type, duration, score, accuracy,
	questions_answered, correct_answers, total_questions,
	generated_summary, flash_cards, quiz_data, selected_quiz_answers, created_at`

// ListByUser returns the user's most recent sessions, newest first.
func (r *SessionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.StudySession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM study_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, sessionHistoryLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ListByUserSince returns sessions created at or after the cutoff, newest
// first. A zero cutoff returns the full capped history.
func (r *SessionRepo) ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.StudySession, error) {
	if since.IsZero() {
		return r.ListByUser(ctx, userID)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM study_sessions
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT $3
	`, userID, since, sessionHistoryLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ListByTopic returns the sessions behind a dashboard topic card. Topic ids
// are session row ids, so the match is on the row id itself.
func (r *SessionRepo) ListByTopic(ctx context.Context, userID, topicID uuid.UUID) ([]models.StudySession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM study_sessions
		WHERE user_id = $1 AND id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, userID, topicID, topicSessionLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

// UpdateQuizResult overwrites the stored quiz outcome on an existing session
// and reports whether a row matched. This is the sole mutation path after a
// session is recorded.
func (r *SessionRepo) UpdateQuizResult(ctx context.Context, userID, sessionID uuid.UUID, correctAnswers int, selectedAnswers []byte) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE study_sessions
		SET correct_answers = $3,
			selected_quiz_answers = $4
		WHERE id = $1 AND user_id = $2
	`, sessionID, userID, correctAnswers, selectedAnswers)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanSessions(rows pgx.Rows) ([]models.StudySession, error) {
	sessions := make([]models.StudySession, 0)
	for rows.Next() {
		var s models.StudySession
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Topic, &s.Type, &s.Duration, &s.Score, &s.Accuracy,
			&s.QuestionsAnswered, &s.CorrectAnswers, &s.TotalQuestions,
			&s.GeneratedSummary, &s.FlashCards, &s.QuizData, &s.SelectedQuizAnswers, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
