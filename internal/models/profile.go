package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	UserID         uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Preferences    json.RawMessage `json:"preferences"`
	StudyGoals     json.RawMessage `json:"studyGoals"`
	TotalStudyTime int             `json:"totalStudyTime"`
	Streak         int             `json:"streak"`
	LastActive     time.Time       `json:"lastActive"`
	CreatedAt      time.Time       `json:"joinedAt"`
}

// Preferences is the default preference document created at signup.
type Preferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	Difficulty    string `json:"difficulty"`
}

type UpdateProfileRequest struct {
	Name        string          `json:"name"`
	Preferences json.RawMessage `json:"preferences"`
	StudyGoals  json.RawMessage `json:"studyGoals"`
}
