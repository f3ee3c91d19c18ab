package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Session types accepted by the study-session endpoint. A "complete"
// session bundles a summary, flashcards, and a quiz in one record.
const (
	SessionTypeSummary    = "summary"
	SessionTypeFlashcards = "flashcards"
	SessionTypeQuiz       = "quiz"
	SessionTypeComplete   = "complete"
)

type StudySession struct {
	ID                  uuid.UUID       `json:"id"`
	UserID              uuid.UUID       `json:"userId"`
	Topic               string          `json:"topic"`
	Type                string          `json:"type"`
	Duration            int             `json:"duration"`
	Score               *int            `json:"score"`
	Accuracy            *int            `json:"accuracy"`
	QuestionsAnswered   *int            `json:"questionsAnswered"`
	CorrectAnswers      *int            `json:"correctAnswers"`
	TotalQuestions      *int            `json:"totalQuestions"`
	GeneratedSummary    *string         `json:"generatedSummary,omitempty"`
	FlashCards          json.RawMessage `json:"flashCards,omitempty"`
	QuizData            json.RawMessage `json:"quizData,omitempty"`
	SelectedQuizAnswers json.RawMessage `json:"selectedQuizAnswers,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

type RecordSessionRequest struct {
	Topic               string          `json:"topic"`
	Type                string          `json:"type"`
	Duration            int             `json:"duration"`
	Score               *int            `json:"score"`
	Accuracy            *int            `json:"accuracy"`
	QuestionsAnswered   *int            `json:"questionsAnswered"`
	CorrectAnswers      *int            `json:"correctAnswers"`
	TotalQuestions      *int            `json:"totalQuestions"`
	GeneratedSummary    *string         `json:"generatedSummary"`
	FlashCards          json.RawMessage `json:"flashCards"`
	QuizData            json.RawMessage `json:"quizData"`
	SelectedQuizAnswers json.RawMessage `json:"selectedQuizAnswers"`
}

type UpdateQuizResultRequest struct {
	CorrectAnswers  int             `json:"correctAnswers"`
	SelectedAnswers json.RawMessage `json:"selectedAnswers"`
}
