package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/J1nSakai/mindbridge/internal/models"
)

// TopicCard is the derived, non-persisted grouping shown on the dashboard.
// Each session row is its own topic: a recorded session bundles the full set
// of study artifacts, so the row id doubles as the topic identifier used by
// the topic-sessions and topic-quiz endpoints.
type TopicCard struct {
	TopicID       string `json:"topicId"`
	Topic         string `json:"topic"`
	TotalSessions int    `json:"totalSessions"`
	AverageScore  int    `json:"averageScore"`
	LastStudied   string `json:"lastStudied"`
}

// ExtractTopics builds topic cards from a user's sessions (newest first).
func ExtractTopics(sessions []models.StudySession, now time.Time) []TopicCard {
	cards := make([]TopicCard, 0, len(sessions))

	groups := make(map[string][]models.StudySession)
	order := make([]string, 0, len(sessions))
	for _, s := range sessions {
		key := s.ID.String()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], s)
	}

	for _, key := range order {
		group := groups[key]

		avgScore := roundedMean(group, func(s models.StudySession) *int { return s.Score })

		latest := group[0].CreatedAt
		for _, s := range group[1:] {
			if s.CreatedAt.After(latest) {
				latest = s.CreatedAt
			}
		}

		cards = append(cards, TopicCard{
			TopicID:       key,
			Topic:         group[0].Topic,
			TotalSessions: len(group),
			AverageScore:  avgScore,
			LastStudied:   RecencyLabel(latest, now),
		})
	}

	return cards
}

// RecencyLabel buckets how long ago a timestamp was into a human label,
// using ceiling-division day counts so a session 24h old reads "Yesterday".
func RecencyLabel(t, now time.Time) string {
	days := int(math.Ceil(now.Sub(t).Hours() / 24))

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return plural(days/7, "week")
	default:
		return plural(days/30, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
