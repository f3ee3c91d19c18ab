package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/J1nSakai/mindbridge/internal/config"
	"github.com/J1nSakai/mindbridge/internal/database"
	"github.com/J1nSakai/mindbridge/internal/handlers"
	"github.com/J1nSakai/mindbridge/internal/middleware"
	"github.com/J1nSakai/mindbridge/internal/repository"
	"github.com/J1nSakai/mindbridge/internal/router"
	"github.com/J1nSakai/mindbridge/internal/services"
	"github.com/J1nSakai/mindbridge/internal/websocket"
)

func main() {
	log.Println("🚀 Starting MindBridge Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	profileRepo := repository.NewProfileRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)

	// ──── Step 5: Initialize AI Client ────
	aiService, err := services.NewAIService(cfg.AIAPIKey, cfg.AIModel)
	if err != nil {
		log.Fatalf("✗ AI client initialization failed: %v", err)
	}
	defer aiService.Close()
	if aiService.Enabled() {
		log.Printf("✓ AI client initialized (%s)", cfg.AIModel)
	} else {
		log.Println("✗ AI_API_KEY not set, AI routes will answer 503")
	}

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	jwtAuth.Checker = userRepo
	authService := services.NewAuthService(userRepo, profileRepo, jwtAuth)
	events := services.NewEventPublisher(redisClients.PubSub)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService, cfg.IsProduction())
	aiHandler := handlers.NewAIHandler(aiService)
	userHandler := handlers.NewUserHandler(sessionRepo, profileRepo, redisClients.Cache, events)

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, jwtAuth)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		aiHandler,
		userHandler,
		wsHub,
		redisClients.Cache,
		cfg.FrontendURL,
		cfg.RateLimitRequests,
		time.Duration(cfg.RateLimitWindow)*time.Minute,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ MindBridge Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
