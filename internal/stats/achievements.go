package stats

import (
	"time"

	"github.com/J1nSakai/mindbridge/internal/models"
)

type Achievement struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// Achievement thresholds. Session-count achievements are back-dated to the
// session that crossed the threshold; duration achievements are stamped with
// the evaluation time since the crossing moment is not recorded.
const (
	firstStepsCount    = 1
	dedicatedCount     = 10
	studyMasterCount   = 50
	hourScholarMinutes = 60
	timeWarriorMinutes = 600
)

// CalculateAchievements evaluates all achievements over a user's full
// session history (newest first), recomputed from scratch on every read.
func CalculateAchievements(sessions []models.StudySession, now time.Time) []Achievement {
	achievements := []Achievement{}

	total := len(sessions)
	totalStudyTime := 0
	for _, s := range sessions {
		totalStudyTime += s.Duration
	}

	// With sessions newest-first, the session that crossed threshold N is
	// the N-th from the end of the list.
	if total >= firstStepsCount {
		achievements = append(achievements, Achievement{
			Name:        "First Steps",
			Description: "Complete your first study session",
			UnlockedAt:  sessions[total-firstStepsCount].CreatedAt,
		})
	}
	if total >= dedicatedCount {
		achievements = append(achievements, Achievement{
			Name:        "Dedicated Learner",
			Description: "Complete 10 study sessions",
			UnlockedAt:  sessions[total-dedicatedCount].CreatedAt,
		})
	}
	if total >= studyMasterCount {
		achievements = append(achievements, Achievement{
			Name:        "Study Master",
			Description: "Complete 50 study sessions",
			UnlockedAt:  sessions[total-studyMasterCount].CreatedAt,
		})
	}

	if totalStudyTime >= hourScholarMinutes {
		achievements = append(achievements, Achievement{
			Name:        "Hour Scholar",
			Description: "Study for 1 hour total",
			UnlockedAt:  now,
		})
	}
	if totalStudyTime >= timeWarriorMinutes {
		achievements = append(achievements, Achievement{
			Name:        "Time Warrior",
			Description: "Study for 10 hours total",
			UnlockedAt:  now,
		})
	}

	return achievements
}

// UnlockedToday counts achievements whose unlock date falls on today's
// calendar date. Nothing is persisted, so this is derived by comparing dates.
func UnlockedToday(achievements []Achievement, now time.Time) int {
	count := 0
	y, m, d := now.Date()
	for _, a := range achievements {
		ay, am, ad := a.UnlockedAt.In(now.Location()).Date()
		if ay == y && am == m && ad == d {
			count++
		}
	}
	return count
}

// SessionMilestone reports the session-count achievement crossed exactly at
// the given total, if any. Used to push unlock events on session writes.
func SessionMilestone(total int) (Achievement, bool) {
	switch total {
	case firstStepsCount:
		return Achievement{Name: "First Steps", Description: "Complete your first study session"}, true
	case dedicatedCount:
		return Achievement{Name: "Dedicated Learner", Description: "Complete 10 study sessions"}, true
	case studyMasterCount:
		return Achievement{Name: "Study Master", Description: "Complete 50 study sessions"}, true
	}
	return Achievement{}, false
}
