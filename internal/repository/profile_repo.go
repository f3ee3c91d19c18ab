package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/J1nSakai/mindbridge/internal/models"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Create(ctx context.Context, p *models.UserProfile) error {
	if len(p.Preferences) == 0 {
		p.Preferences = json.RawMessage("{}")
	}
	if len(p.StudyGoals) == 0 {
		p.StudyGoals = json.RawMessage("[]")
	}

	query := `
		INSERT INTO user_profiles (user_id, name, email, preferences, study_goals)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING created_at, last_active`

	return r.pool.QueryRow(ctx, query,
		p.UserID, p.Name, p.Email, p.Preferences, p.StudyGoals,
	).Scan(&p.CreatedAt, &p.LastActive)
}

func (r *ProfileRepo) Get(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	p := &models.UserProfile{}
	query := `SELECT user_id, name, email, preferences, study_goals, total_study_time, streak, last_active, created_at
		FROM user_profiles WHERE user_id = $1`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Name, &p.Email, &p.Preferences, &p.StudyGoals,
		&p.TotalStudyTime, &p.Streak, &p.LastActive, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a partial profile edit. Empty fields keep their stored
// values, and any write refreshes last_active.
func (r *ProfileRepo) Update(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.UserProfile, error) {
	p := &models.UserProfile{}
	query := `
		UPDATE user_profiles
		SET name = COALESCE(NULLIF($2::text, ''), name),
			preferences = COALESCE($3::jsonb, preferences),
			study_goals = COALESCE($4::jsonb, study_goals),
			last_active = NOW()
		WHERE user_id = $1
		RETURNING user_id, name, email, preferences, study_goals, total_study_time, streak, last_active, created_at`

	var prefs, goals any
	if len(req.Preferences) > 0 {
		prefs = req.Preferences
	}
	if len(req.StudyGoals) > 0 {
		goals = req.StudyGoals
	}

	err := r.pool.QueryRow(ctx, query, userID, req.Name, prefs, goals).Scan(
		&p.UserID, &p.Name, &p.Email, &p.Preferences, &p.StudyGoals,
		&p.TotalStudyTime, &p.Streak, &p.LastActive, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Touch bumps the cached study-time counter and streak after a session write.
func (r *ProfileRepo) Touch(ctx context.Context, userID uuid.UUID, addedMinutes, streak int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE user_profiles
		SET total_study_time = total_study_time + $2,
			streak = $3,
			last_active = NOW()
		WHERE user_id = $1
	`, userID, addedMinutes, streak)
	return err
}
