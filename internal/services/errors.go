package services

import "github.com/J1nSakai/mindbridge/internal/models"

// Typed errors translated into HTTP statuses by the handlers.

type ValidationError struct {
	Details []models.FieldError
}

func (e *ValidationError) Error() string { return "Validation failed" }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

// UnavailableError marks a disabled or failing upstream collaborator.
type UnavailableError struct{ Message string }

func (e *UnavailableError) Error() string { return e.Message }
