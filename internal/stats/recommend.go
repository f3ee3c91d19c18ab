package stats

import "github.com/J1nSakai/mindbridge/internal/models"

// accuracyFloor is the average accuracy below which flashcard review is
// suggested.
const accuracyFloor = 70

// Recommendations returns ordered study suggestions. The rules run in a
// fixed order and the output is plain strings, not structured data.
func Recommendations(sessions []models.StudySession) []string {
	recommendations := []string{}

	if len(sessions) == 0 {
		recommendations = append(recommendations,
			"Start your learning journey with a topic you're interested in!")
		return recommendations
	}

	sum, n := 0, 0
	for _, s := range sessions {
		if s.Accuracy != nil {
			sum += *s.Accuracy
			n++
		}
	}
	if n > 0 && float64(sum)/float64(n) < accuracyFloor {
		recommendations = append(recommendations,
			"Try reviewing topics with flashcards to improve your accuracy")
	}

	recentTopics := make(map[string]struct{})
	for i, s := range sessions {
		if i >= 5 {
			break
		}
		recentTopics[s.Topic] = struct{}{}
	}
	if len(recentTopics) < 3 {
		recommendations = append(recommendations,
			"Explore new topics to broaden your knowledge")
	}

	recommendations = append(recommendations,
		"Test your knowledge with interactive quizzes for better retention")

	return recommendations
}
