package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/J1nSakai/mindbridge/internal/middleware"
	"github.com/J1nSakai/mindbridge/internal/models"
	"github.com/J1nSakai/mindbridge/internal/repository"
	"github.com/J1nSakai/mindbridge/internal/services"
	"github.com/J1nSakai/mindbridge/internal/stats"
)

// dashboardCacheTTL bounds the staleness of the cached dashboard payload.
// The cache is invalidated on every session write, so the TTL only matters
// for cross-instance drift.
const dashboardCacheTTL = 5 * time.Minute

type UserHandler struct {
	sessionRepo *repository.SessionRepo
	profileRepo *repository.ProfileRepo
	cache       *redis.Client
	events      *services.EventPublisher
}

func NewUserHandler(sessionRepo *repository.SessionRepo, profileRepo *repository.ProfileRepo, cache *redis.Client, events *services.EventPublisher) *UserHandler {
	return &UserHandler{
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
		cache:       cache,
		events:      events,
	}
}

// RecordSession persists one study session and fans out realtime updates.
func (h *UserHandler) RecordSession(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.RecordSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Validation failed", "Invalid request body"))
		return
	}

	if details := validateSessionRequest(&req); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, validationResp(details))
		return
	}

	session := &models.StudySession{
		UserID:              userID,
		Topic:               req.Topic,
		Type:                req.Type,
		Duration:            req.Duration,
		Score:               req.Score,
		Accuracy:            req.Accuracy,
		QuestionsAnswered:   req.QuestionsAnswered,
		CorrectAnswers:      req.CorrectAnswers,
		TotalQuestions:      req.TotalQuestions,
		GeneratedSummary:    req.GeneratedSummary,
		FlashCards:          req.FlashCards,
		QuizData:            req.QuizData,
		SelectedQuizAnswers: req.SelectedQuizAnswers,
	}

	if err := h.sessionRepo.Create(r.Context(), session); err != nil {
		handleServiceError(w, err)
		return
	}

	h.invalidateDashboard(r.Context(), userID)
	h.afterSessionWrite(r.Context(), userID, session)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Study session recorded successfully",
		"session": map[string]interface{}{
			"id":                  session.ID,
			"topic":               session.Topic,
			"type":                session.Type,
			"createdAt":           session.CreatedAt,
			"questionsAnswered":   session.QuestionsAnswered,
			"correctAnswers":      session.CorrectAnswers,
			"totalQuestions":      session.TotalQuestions,
			"selectedQuizAnswers": session.SelectedQuizAnswers,
		},
	})
}

// afterSessionWrite refreshes the cached profile counters and publishes
// realtime events. All of it is best-effort.
func (h *UserHandler) afterSessionWrite(ctx context.Context, userID uuid.UUID, session *models.StudySession) {
	sessions, err := h.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("post-session fetch failed for %s: %v", userID, err)
		return
	}

	now := time.Now()
	streak := stats.CalculateStreak(sessions, now)
	if err := h.profileRepo.Touch(ctx, userID, session.Duration, streak); err != nil {
		log.Printf("profile touch failed for %s: %v", userID, err)
	}

	h.events.Publish(ctx, userID, models.WSMessage{
		Type: "session_recorded",
		Payload: map[string]interface{}{
			"sessionId": session.ID,
			"topic":     session.Topic,
			"type":      session.Type,
			"streak":    streak,
		},
	})

	if milestone, ok := stats.SessionMilestone(len(sessions)); ok {
		milestone.UnlockedAt = session.CreatedAt
		h.events.Publish(ctx, userID, models.WSMessage{
			Type:    "achievement_unlocked",
			Payload: milestone,
		})
	}
}

// Dashboard assembles the user's dashboard payload: all-time recent sessions
// for topic extraction plus derived stats over the trailing week. The two
// queries are independent and run concurrently.
func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ctx := r.Context()

	cacheKey := dashboardCacheKey(userID)
	if cached, err := h.cache.Get(ctx, cacheKey).Result(); err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	var (
		allSessions, weekSessions []models.StudySession
		allErr, weekErr           error
	)
	done := make(chan struct{})
	go func() {
		weekSessions, weekErr = h.sessionRepo.ListByUserSince(ctx, userID, time.Now().AddDate(0, 0, -7))
		close(done)
	}()
	allSessions, allErr = h.sessionRepo.ListByUser(ctx, userID)
	<-done

	if allErr != nil || weekErr != nil {
		log.Printf("dashboard fetch failed for %s: all=%v week=%v", userID, allErr, weekErr)
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to get dashboard", "Unable to retrieve dashboard data"))
		return
	}

	payload := dashboardPayload(userID, allSessions, weekSessions, time.Now())

	if data, err := json.Marshal(payload); err == nil {
		if err := h.cache.Set(ctx, cacheKey, data, dashboardCacheTTL).Err(); err != nil {
			log.Printf("dashboard cache write failed for %s: %v", userID, err)
		}
	}

	writeJSON(w, http.StatusOK, payload)
}

// dashboardPayload assembles the dashboard body: weekly stats over the
// trailing-week subset, everything else (topic cards, streak, achievements,
// recommendations) over the full recent history.
func dashboardPayload(userID uuid.UUID, allSessions, weekSessions []models.StudySession, now time.Time) map[string]interface{} {
	weeklyStats := stats.CalculateProgress(weekSessions)
	weeklyStats.Achievements = len(stats.CalculateAchievements(allSessions, now))

	return map[string]interface{}{
		"userId":          userID,
		"recentSessions":  allSessions,
		"weeklyStats":     weeklyStats,
		"topics":          stats.ExtractTopics(allSessions, now),
		"studyStreak":     stats.CalculateStreak(allSessions, now),
		"recommendations": stats.Recommendations(allSessions),
	}
}

// TopicSessions returns the sessions behind one dashboard topic card.
func (h *UserHandler) TopicSessions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	topicID, err := uuid.Parse(r.URL.Query().Get("topicId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Topic parameter is required",
		})
		return
	}

	sessions, err := h.sessionRepo.ListByTopic(r.Context(), userID, topicID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if len(sessions) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "No sessions found for this topic",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    sessions,
		"message": fmt.Sprintf("Found %d sessions for topic: %s", len(sessions), topicID),
	})
}

// UpdateTopicQuiz overwrites a session's stored quiz outcome.
func (h *UserHandler) UpdateTopicQuiz(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	topicID, err := uuid.Parse(chi.URLParam(r, "topicId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Validation failed", "Invalid topic id"))
		return
	}

	var req models.UpdateQuizResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Validation failed", "Invalid request body"))
		return
	}
	if req.CorrectAnswers < 0 {
		writeJSON(w, http.StatusBadRequest, validationResp([]models.FieldError{
			{Field: "correctAnswers", Message: "Correct answers must be a non-negative integer"},
		}))
		return
	}

	matched, err := h.sessionRepo.UpdateQuizResult(r.Context(), userID, topicID, req.CorrectAnswers, req.SelectedAnswers)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if !matched {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "No sessions found for this topic",
		})
		return
	}

	h.invalidateDashboard(r.Context(), userID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Quiz data updated successfully",
	})
}

// Progress returns windowed progress stats plus a short recent-session list.
func (h *UserHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	timeframe := r.URL.Query().Get("timeframe")
	if timeframe == "" {
		timeframe = "week"
	}

	var since time.Time
	now := time.Now()
	switch timeframe {
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, 0, -30)
	case "year":
		since = now.AddDate(0, 0, -365)
	default:
		timeframe = "all"
	}

	sessions, err := h.sessionRepo.ListByUserSince(r.Context(), userID, since)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	recent := sessions
	if len(recent) > 10 {
		recent = recent[:10]
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId":         userID,
		"timeframe":      timeframe,
		"stats":          stats.CalculateProgress(sessions),
		"recentSessions": recent,
		"totalSessions":  len(sessions),
	})
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.profileRepo.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("Profile not found", "User profile does not exist"))
			return
		}
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Validation failed", "Invalid request body"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name != "" && len(req.Name) < 2 {
		writeJSON(w, http.StatusBadRequest, validationResp([]models.FieldError{
			{Field: "name", Message: "Name must be at least 2 characters"},
		}))
		return
	}

	profile, err := h.profileRepo.Update(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("Profile not found", "User profile does not exist"))
			return
		}
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// Achievements recomputes the full achievement set from session history.
func (h *UserHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	sessions, err := h.sessionRepo.ListByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	now := time.Now()
	achievements := stats.CalculateAchievements(sessions, now)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId":            userID,
		"achievements":      achievements,
		"totalAchievements": len(achievements),
		"unlockedToday":     stats.UnlockedToday(achievements, now),
	})
}

// Test is a connectivity probe for authenticated clients.
func (h *UserHandler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "API is working!",
		"user": map[string]interface{}{
			"userId": middleware.GetUserID(r.Context()),
			"email":  middleware.GetEmail(r.Context()),
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *UserHandler) invalidateDashboard(ctx context.Context, userID uuid.UUID) {
	if err := h.cache.Del(ctx, dashboardCacheKey(userID)).Err(); err != nil {
		log.Printf("dashboard cache invalidation failed for %s: %v", userID, err)
	}
}

func dashboardCacheKey(userID uuid.UUID) string {
	return "dashboard:" + userID.String()
}

func validateSessionRequest(req *models.RecordSessionRequest) []models.FieldError {
	var details []models.FieldError

	req.Topic = strings.TrimSpace(req.Topic)
	if len(req.Topic) < 3 {
		details = append(details, models.FieldError{Field: "topic", Message: "Topic is required"})
	}
	switch req.Type {
	case models.SessionTypeSummary, models.SessionTypeFlashcards, models.SessionTypeQuiz, models.SessionTypeComplete:
	default:
		details = append(details, models.FieldError{Field: "type", Message: "Invalid session type"})
	}
	if req.Duration < 1 {
		details = append(details, models.FieldError{Field: "duration", Message: "Duration must be a positive integer"})
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
		details = append(details, models.FieldError{Field: "score", Message: "Score must be between 0 and 100"})
	}
	if req.Accuracy != nil && (*req.Accuracy < 0 || *req.Accuracy > 100) {
		details = append(details, models.FieldError{Field: "accuracy", Message: "Accuracy must be between 0 and 100"})
	}
	if req.QuestionsAnswered != nil && *req.QuestionsAnswered < 0 {
		details = append(details, models.FieldError{Field: "questionsAnswered", Message: "Questions answered must be a non-negative integer"})
	}
	if req.CorrectAnswers != nil && *req.CorrectAnswers < 0 {
		details = append(details, models.FieldError{Field: "correctAnswers", Message: "Correct answers must be a non-negative integer"})
	}

	return details
}
