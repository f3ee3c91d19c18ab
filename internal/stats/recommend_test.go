package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/J1nSakai/mindbridge/internal/models"
)

func TestRecommendations_NoSessions(t *testing.T) {
	got := Recommendations(nil)

	assert.Equal(t, []string{
		"Start your learning journey with a topic you're interested in!",
	}, got)
}

func TestRecommendations_LowAccuracyAndFewTopics(t *testing.T) {
	now := time.Now()
	sessions := []models.StudySession{
		{Topic: "Algebra", Type: models.SessionTypeQuiz, Accuracy: intPtr(50), CreatedAt: now},
		{Topic: "Algebra", Type: models.SessionTypeQuiz, Accuracy: intPtr(60), CreatedAt: now},
	}

	got := Recommendations(sessions)

	require.Len(t, got, 3)
	assert.Equal(t, "Try reviewing topics with flashcards to improve your accuracy", got[0])
	assert.Equal(t, "Explore new topics to broaden your knowledge", got[1])
	assert.Equal(t, "Test your knowledge with interactive quizzes for better retention", got[2])
}

func TestRecommendations_VariedTopicsHighAccuracy(t *testing.T) {
	now := time.Now()
	sessions := []models.StudySession{
		{Topic: "Algebra", Type: models.SessionTypeQuiz, Accuracy: intPtr(90), CreatedAt: now},
		{Topic: "History", Type: models.SessionTypeQuiz, Accuracy: intPtr(85), CreatedAt: now},
		{Topic: "Biology", Type: models.SessionTypeQuiz, Accuracy: intPtr(95), CreatedAt: now},
	}

	got := Recommendations(sessions)

	assert.Equal(t, []string{
		"Test your knowledge with interactive quizzes for better retention",
	}, got)
}
