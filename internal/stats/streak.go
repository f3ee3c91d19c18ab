package stats

import (
	"time"

	"github.com/J1nSakai/mindbridge/internal/models"
)

// CalculateStreak walks sessions newest-first and counts consecutive
// calendar days of activity ending today or yesterday. Each session's day
// offset from today must equal the running streak exactly; the first
// mismatch ends the walk, so any gap breaks the streak.
func CalculateStreak(sessions []models.StudySession, now time.Time) int {
	if len(sessions) == 0 {
		return 0
	}

	today := midnight(now, now.Location())

	streak := 0
	for _, s := range sessions {
		sessionDay := midnight(s.CreatedAt.In(now.Location()), now.Location())
		daysDiff := int(today.Sub(sessionDay).Hours() / 24)

		if daysDiff != streak {
			break
		}
		streak++
	}

	return streak
}

func midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
