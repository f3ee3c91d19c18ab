package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/J1nSakai/mindbridge/internal/handlers"
	"github.com/J1nSakai/mindbridge/internal/middleware"
	"github.com/J1nSakai/mindbridge/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	aiHandler *handlers.AIHandler,
	userHandler *handlers.UserHandler,
	wsHub *websocket.Hub,
	redisClient *redis.Client,
	frontendURL string,
	globalLimit int,
	globalWindow time.Duration,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	globalLimiter := middleware.NewRateLimiter(redisClient, "global", globalLimit, globalWindow)
	r.Use(globalLimiter.Middleware)

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(redisClient, "auth", 10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {

		// ──── Auth Routes ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Get("/me", authHandler.Me)
			})
		})

		// ──── AI Routes ────
		r.Route("/ai", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/summary", aiHandler.GenerateSummary)
			r.Post("/flashcards", aiHandler.GenerateFlashcards)
			r.Post("/quiz", aiHandler.GenerateQuiz)
			r.Post("/explain", aiHandler.GenerateExplanation)
		})

		// ──── User Routes ────
		r.Route("/user", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)

			r.Post("/study-session", userHandler.RecordSession)
			r.Get("/test", userHandler.Test)

			// Ownership-scoped routes: token user must match :userId
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireOwner("userId"))
				r.Get("/dashboard/{userId}", userHandler.Dashboard)
				r.Get("/topic-sessions/{userId}", userHandler.TopicSessions)
				r.Put("/topic-quiz/{userId}/{topicId}", userHandler.UpdateTopicQuiz)
				r.Get("/progress/{userId}", userHandler.Progress)
				r.Get("/profile/{userId}", userHandler.GetProfile)
				r.Put("/profile/{userId}", userHandler.UpdateProfile)
				r.Get("/achievements/{userId}", userHandler.Achievements)
			})
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
