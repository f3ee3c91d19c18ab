package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/J1nSakai/mindbridge/internal/middleware"
	"github.com/J1nSakai/mindbridge/internal/models"
	"github.com/J1nSakai/mindbridge/internal/repository"
)

type AuthService struct {
	userRepo    *repository.UserRepo
	profileRepo *repository.ProfileRepo
	jwt         *middleware.JWTAuth
}

func NewAuthService(userRepo *repository.UserRepo, profileRepo *repository.ProfileRepo, jwt *middleware.JWTAuth) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwt:         jwt,
	}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, string, error) {
	// Validate all fields at once
	var details []models.FieldError

	if !emailRegex.MatchString(req.Email) {
		details = append(details, models.FieldError{Field: "email", Message: "Invalid email format"})
	}
	if len(req.Password) < 8 {
		details = append(details, models.FieldError{Field: "password", Message: "Password must be at least 8 characters"})
	}
	if len(req.Name) < 2 {
		details = append(details, models.FieldError{Field: "name", Message: "Name must be at least 2 characters"})
	}

	if len(details) > 0 {
		return nil, "", &ValidationError{Details: details}
	}

	// Check uniqueness
	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, "", &ConflictError{Message: "An account with this email already exists"}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}

	// Hash password (bcrypt cost 12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two signups can race past the GetByEmail check; the unique
		// index on users.email is the authoritative guard.
		if isUniqueViolation(err) {
			return nil, "", &ConflictError{Message: "An account with this email already exists"}
		}
		return nil, "", err
	}

	// Profile creation is best-effort. A missing profile row never blocks
	// signup; the account is already usable.
	prefs, _ := json.Marshal(models.Preferences{
		Theme:         "light",
		Notifications: true,
		Difficulty:    "intermediate",
	})
	profile := &models.UserProfile{
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Preferences: prefs,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		log.Printf("profile creation failed for %s: %v", user.ID, err)
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", &UnauthorizedError{Message: "Email or password is incorrect"}
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", &UnauthorizedError{Message: "Email or password is incorrect"}
	}

	if !user.IsActive {
		return nil, "", &UnauthorizedError{Message: "Email or password is incorrect"}
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("last-login update failed for %s: %v", user.ID, err)
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "User not found"}
		}
		return nil, err
	}
	return user, nil
}
