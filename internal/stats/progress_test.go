package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/J1nSakai/mindbridge/internal/models"
)

func intPtr(v int) *int { return &v }

func session(sessType string, duration int, score, accuracy *int, createdAt time.Time) models.StudySession {
	return models.StudySession{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Topic:     "Photosynthesis",
		Type:      sessType,
		Duration:  duration,
		Score:     score,
		Accuracy:  accuracy,
		CreatedAt: createdAt,
	}
}

func TestCalculateProgress_Empty(t *testing.T) {
	stats := CalculateProgress(nil)

	assert.Equal(t, 0, stats.TotalSessions)
	assert.Equal(t, 0, stats.TotalStudyTime)
	assert.Equal(t, 0, stats.AverageScore)
	assert.Equal(t, 0, stats.AverageAccuracy)
	require.NotNil(t, stats.TopicBreakdown)
	require.NotNil(t, stats.TypeBreakdown)
	assert.Empty(t, stats.TopicBreakdown)
	assert.Empty(t, stats.TypeBreakdown)
}

func TestCalculateProgress_CompleteCountsAsAllTypes(t *testing.T) {
	now := time.Now()
	sessions := []models.StudySession{
		session(models.SessionTypeComplete, 30, intPtr(80), intPtr(80), now),
		session(models.SessionTypeQuiz, 10, intPtr(60), intPtr(60), now.Add(-time.Hour)),
	}

	stats := CalculateProgress(sessions)

	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 40, stats.TotalStudyTime)
	assert.Equal(t, 1, stats.TypeBreakdown[models.SessionTypeSummary])
	assert.Equal(t, 1, stats.TypeBreakdown[models.SessionTypeFlashcards])
	assert.Equal(t, 2, stats.TypeBreakdown[models.SessionTypeQuiz])
	assert.NotContains(t, stats.TypeBreakdown, models.SessionTypeComplete)
}

func TestCalculateProgress_AveragesSkipMissingFields(t *testing.T) {
	now := time.Now()
	sessions := []models.StudySession{
		session(models.SessionTypeQuiz, 10, intPtr(90), intPtr(70), now),
		session(models.SessionTypeSummary, 20, nil, nil, now.Add(-time.Hour)),
		session(models.SessionTypeQuiz, 15, intPtr(61), intPtr(50), now.Add(-2*time.Hour)),
	}

	stats := CalculateProgress(sessions)

	// (90+61)/2 = 75.5 rounds to 76; (70+50)/2 = 60.
	assert.Equal(t, 76, stats.AverageScore)
	assert.Equal(t, 60, stats.AverageAccuracy)
}
