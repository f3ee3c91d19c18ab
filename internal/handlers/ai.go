package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/J1nSakai/mindbridge/internal/models"
	"github.com/J1nSakai/mindbridge/internal/services"
)

type AIHandler struct {
	aiService *services.AIService
}

func NewAIHandler(aiService *services.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

func (h *AIHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTopicRequest(w, r, false)
	if !ok {
		return
	}

	resp, err := h.aiService.GenerateSummary(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AIHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTopicRequest(w, r, false)
	if !ok {
		return
	}
	if req.CardCount <= 0 {
		req.CardCount = 10
	}

	resp, err := h.aiService.GenerateFlashcards(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AIHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTopicRequest(w, r, true)
	if !ok {
		return
	}

	resp, err := h.aiService.GenerateQuiz(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AIHandler) GenerateExplanation(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTopicRequest(w, r, false)
	if !ok {
		return
	}

	resp, err := h.aiService.GenerateExplanation(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeTopicRequest parses and validates the shared request shape of the AI
// endpoints. quiz toggles the question-count bounds check.
func (h *AIHandler) decodeTopicRequest(w http.ResponseWriter, r *http.Request, quiz bool) (models.GenerateRequest, bool) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Validation failed", "Invalid request body"))
		return req, false
	}

	req.Topic = strings.TrimSpace(req.Topic)
	if req.Difficulty == "" {
		req.Difficulty = "intermediate"
	}

	var details []models.FieldError
	if len(req.Topic) < 3 {
		details = append(details, models.FieldError{Field: "topic", Message: "Topic must be at least 3 characters"})
	}
	switch req.Difficulty {
	case "beginner", "intermediate", "advanced":
	default:
		details = append(details, models.FieldError{Field: "difficulty", Message: "Invalid difficulty level"})
	}
	if quiz {
		if req.QuestionCount == 0 {
			req.QuestionCount = 10
		}
		if req.QuestionCount < 5 || req.QuestionCount > 20 {
			details = append(details, models.FieldError{Field: "questionCount", Message: "Question count must be between 5 and 20"})
		}
	}

	if len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, validationResp(details))
		return req, false
	}
	return req, true
}
