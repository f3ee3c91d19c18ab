package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/J1nSakai/mindbridge/internal/models"
	"github.com/J1nSakai/mindbridge/internal/services"
)

// Shared response helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(tag, message string) models.ErrorResponse {
	return models.ErrorResponse{
		Error:   tag,
		Message: message,
	}
}

func validationResp(details []models.FieldError) models.ErrorResponse {
	return models.ErrorResponse{
		Error:   "Validation failed",
		Message: "One or more fields are invalid",
		Details: details,
	}
}

// handleServiceError translates typed service errors into HTTP statuses. Raw
// collaborator errors never reach the client; anything untyped becomes a
// generic 500.
func handleServiceError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, validationResp(e.Details))
	case *services.ConflictError:
		writeJSON(w, http.StatusConflict, errorResp("Conflict", e.Message))
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp("Not found", e.Message))
	case *services.UnauthorizedError:
		writeJSON(w, http.StatusUnauthorized, errorResp("Unauthorized", e.Message))
	case *services.ForbiddenError:
		writeJSON(w, http.StatusForbidden, errorResp("Access forbidden", e.Message))
	case *services.UnavailableError:
		writeJSON(w, http.StatusServiceUnavailable, errorResp("Service unavailable", e.Message))
	default:
		log.Printf("unhandled service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("Internal error", "An unexpected error occurred"))
	}
}
