package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	Name          string     `json:"name"`
	EmailVerified bool       `json:"emailVerification"`
	IsActive      bool       `json:"-"`
	CreatedAt     time.Time  `json:"registration"`
	LastLoginAt   *time.Time `json:"-"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PublicUser is the user shape returned by the auth endpoints.
type PublicUser struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	Name              string     `json:"name"`
	EmailVerification *bool      `json:"emailVerification,omitempty"`
	Registration      *time.Time `json:"registration,omitempty"`
}
