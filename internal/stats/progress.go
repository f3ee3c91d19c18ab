// Package stats computes derived study statistics: progress aggregates,
// achievements, streaks, topic cards, and recommendations. Every function is
// pure, performs no I/O, and treats an empty session list as the zero case.
// Callers pass sessions ordered by recency, newest first.
package stats

import (
	"math"

	"github.com/J1nSakai/mindbridge/internal/models"
)

type ProgressStats struct {
	TotalSessions   int            `json:"totalSessions"`
	TotalStudyTime  int            `json:"totalStudyTime"`
	AverageScore    int            `json:"averageScore"`
	AverageAccuracy int            `json:"averageAccuracy"`
	TopicBreakdown  map[string]int `json:"topicBreakdown"`
	TypeBreakdown   map[string]int `json:"typeBreakdown"`

	// Achievements is the all-time achievement count, filled in by the
	// dashboard handler. Not part of the windowed aggregation itself.
	Achievements int `json:"achievements"`
}

// CalculateProgress aggregates a list of sessions into progress stats.
func CalculateProgress(sessions []models.StudySession) ProgressStats {
	stats := ProgressStats{
		TopicBreakdown: make(map[string]int),
		TypeBreakdown:  make(map[string]int),
	}
	if len(sessions) == 0 {
		return stats
	}

	stats.TotalSessions = len(sessions)
	for _, s := range sessions {
		stats.TotalStudyTime += s.Duration
	}
	stats.AverageScore = roundedMean(sessions, func(s models.StudySession) *int { return s.Score })
	stats.AverageAccuracy = roundedMean(sessions, func(s models.StudySession) *int { return s.Accuracy })

	for _, s := range sessions {
		stats.TopicBreakdown[s.Topic]++

		// A "complete" session bundles all three study artifacts, so it is
		// credited as one of each activity type rather than its own bucket.
		if s.Type == models.SessionTypeComplete {
			stats.TypeBreakdown[models.SessionTypeSummary]++
			stats.TypeBreakdown[models.SessionTypeFlashcards]++
			stats.TypeBreakdown[models.SessionTypeQuiz]++
		} else {
			stats.TypeBreakdown[s.Type]++
		}
	}

	return stats
}

// roundedMean averages an optional field over the sessions that carry it,
// returning 0 when none do.
func roundedMean(sessions []models.StudySession, field func(models.StudySession) *int) int {
	sum, n := 0, 0
	for _, s := range sessions {
		if v := field(s); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}
