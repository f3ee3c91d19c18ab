package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/J1nSakai/mindbridge/internal/models"
	"github.com/J1nSakai/mindbridge/internal/services"
	"github.com/J1nSakai/mindbridge/internal/stats"
)

func intPtr(v int) *int { return &v }

// ─── Session Validation Tests ───

func TestValidateSessionRequest_Valid(t *testing.T) {
	req := &models.RecordSessionRequest{
		Topic:    "Photosynthesis",
		Type:     models.SessionTypeComplete,
		Duration: 30,
		Score:    intPtr(85),
		Accuracy: intPtr(85),
	}

	if details := validateSessionRequest(req); len(details) != 0 {
		t.Fatalf("expected no field errors, got %+v", details)
	}
}

func TestValidateSessionRequest_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		req   models.RecordSessionRequest
		field string
	}{
		{"short topic", models.RecordSessionRequest{Topic: "ab", Type: "quiz", Duration: 5}, "topic"},
		{"bad type", models.RecordSessionRequest{Topic: "Algebra", Type: "cramming", Duration: 5}, "type"},
		{"zero duration", models.RecordSessionRequest{Topic: "Algebra", Type: "quiz", Duration: 0}, "duration"},
		{"score over 100", models.RecordSessionRequest{Topic: "Algebra", Type: "quiz", Duration: 5, Score: intPtr(101)}, "score"},
		{"negative accuracy", models.RecordSessionRequest{Topic: "Algebra", Type: "quiz", Duration: 5, Accuracy: intPtr(-1)}, "accuracy"},
		{"negative correct answers", models.RecordSessionRequest{Topic: "Algebra", Type: "quiz", Duration: 5, CorrectAnswers: intPtr(-2)}, "correctAnswers"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			details := validateSessionRequest(&tc.req)
			if len(details) == 0 {
				t.Fatal("expected field errors, got none")
			}
			found := false
			for _, d := range details {
				if d.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected error on field %q, got %+v", tc.field, details)
			}
		})
	}
}

// ─── Dashboard Payload Tests ───

func TestDashboardPayload(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	recent := models.StudySession{
		ID:        uuid.New(),
		UserID:    userID,
		Topic:     "Photosynthesis",
		Type:      models.SessionTypeComplete,
		Duration:  30,
		Score:     intPtr(80),
		CreatedAt: now.Add(-2 * time.Hour),
	}
	old := models.StudySession{
		ID:        uuid.New(),
		UserID:    userID,
		Topic:     "Algebra",
		Type:      models.SessionTypeQuiz,
		Duration:  20,
		Score:     intPtr(60),
		CreatedAt: now.AddDate(0, 0, -20),
	}

	allSessions := []models.StudySession{recent, old}
	weekSessions := []models.StudySession{recent}

	payload := dashboardPayload(userID, allSessions, weekSessions, now)

	if payload["userId"] != userID {
		t.Errorf("expected userId %s, got %v", userID, payload["userId"])
	}

	weekly, ok := payload["weeklyStats"].(stats.ProgressStats)
	if !ok {
		t.Fatalf("weeklyStats has unexpected type %T", payload["weeklyStats"])
	}
	if weekly.TotalSessions != 1 {
		t.Errorf("expected weekly stats over the weekly subset only, got %d sessions", weekly.TotalSessions)
	}
	if weekly.Achievements != 1 {
		t.Errorf("expected 1 achievement over all sessions, got %d", weekly.Achievements)
	}

	topics, ok := payload["topics"].([]stats.TopicCard)
	if !ok {
		t.Fatalf("topics has unexpected type %T", payload["topics"])
	}
	if len(topics) != 2 {
		t.Fatalf("expected one topic card per session, got %d", len(topics))
	}
	if topics[0].TopicID != recent.ID.String() {
		t.Errorf("expected first card keyed by newest session id, got %q", topics[0].TopicID)
	}
	if topics[0].LastStudied != "Yesterday" {
		t.Errorf("expected recency label Yesterday, got %q", topics[0].LastStudied)
	}

	if payload["studyStreak"] != 1 {
		t.Errorf("expected streak 1, got %v", payload["studyStreak"])
	}

	recs, ok := payload["recommendations"].([]string)
	if !ok || len(recs) == 0 {
		t.Fatalf("expected non-empty recommendations, got %v", payload["recommendations"])
	}
}

// ─── AI Handler Tests ───

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestAIHandler_ShortTopicRejected(t *testing.T) {
	svc, _ := services.NewAIService("", "")
	h := NewAIHandler(svc)

	rr := postJSON(t, h.GenerateSummary, "/api/ai/summary", map[string]string{"topic": "ab"})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Details) == 0 || resp.Details[0].Field != "topic" {
		t.Fatalf("expected topic field error, got %+v", resp.Details)
	}
}

func TestAIHandler_BadDifficultyRejected(t *testing.T) {
	svc, _ := services.NewAIService("", "")
	h := NewAIHandler(svc)

	rr := postJSON(t, h.GenerateSummary, "/api/ai/summary", map[string]string{
		"topic":      "Photosynthesis",
		"difficulty": "impossible",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestAIHandler_QuestionCountBounds(t *testing.T) {
	svc, _ := services.NewAIService("", "")
	h := NewAIHandler(svc)

	rr := postJSON(t, h.GenerateQuiz, "/api/ai/quiz", map[string]interface{}{
		"topic":         "Photosynthesis",
		"questionCount": 50,
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestAIHandler_DisabledReturns503(t *testing.T) {
	svc, _ := services.NewAIService("", "")
	h := NewAIHandler(svc)

	rr := postJSON(t, h.GenerateSummary, "/api/ai/summary", map[string]string{
		"topic": "Photosynthesis",
	})

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when AI is disabled, got %d", rr.Code)
	}
}

// ─── Service Error Translation Tests ───

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &services.ValidationError{Details: []models.FieldError{{Field: "email"}}}, http.StatusBadRequest},
		{"conflict", &services.ConflictError{Message: "exists"}, http.StatusConflict},
		{"not found", &services.NotFoundError{Message: "missing"}, http.StatusNotFound},
		{"unauthorized", &services.UnauthorizedError{Message: "nope"}, http.StatusUnauthorized},
		{"forbidden", &services.ForbiddenError{Message: "denied"}, http.StatusForbidden},
		{"unavailable", &services.UnavailableError{Message: "down"}, http.StatusServiceUnavailable},
		{"unknown", http.ErrBodyNotAllowed, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handleServiceError(rr, tc.err)
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("error body is not valid JSON: %v", err)
			}
			if resp.Error == "" || resp.Message == "" {
				t.Fatalf("error body missing fields: %+v", resp)
			}
		})
	}
}
