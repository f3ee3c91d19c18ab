package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/J1nSakai/mindbridge/internal/models"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	EmailKey  contextKey = "email"
)

// AuthCookieName is the HTTP-only cookie set at signup/login. Requests may
// carry the token either there or in the Authorization header.
const AuthCookieName = "authToken"

// TokenTTL is the lifetime of an issued token. There is no refresh
// mechanism; after expiry the user logs in again.
const TokenTTL = 7 * 24 * time.Hour

// UserChecker is an optional cross-check against the row store. Its failure
// must never block a request whose token already verified.
type UserChecker interface {
	Exists(ctx context.Context, userID uuid.UUID) error
}

type JWTAuth struct {
	Secret []byte

	// Checker, when set, is consulted best-effort after token verification.
	Checker UserChecker
}

func NewJWTAuth(secret string) *JWTAuth {
	return &JWTAuth{Secret: []byte(secret)}
}

// GenerateToken creates a signed token binding a user id and email.
func (j *JWTAuth) GenerateToken(userID uuid.UUID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   email,
		"exp":     time.Now().Add(TokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Verify parses a token and returns the embedded identity. Expired tokens
// are reported distinctly from malformed ones.
func (j *JWTAuth) Verify(tokenStr string) (uuid.UUID, string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return j.Secret, nil
	})
	if err != nil {
		return uuid.Nil, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}

	email, _ := claims["email"].(string)
	return userID, email, nil
}

// Middleware validates the token (bearer header or cookie) and attaches the
// identity to the request context.
func (j *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractToken(r)
		if tokenStr == "" {
			writeAuthError(w, http.StatusUnauthorized, "Access denied", "No token provided")
			return
		}

		userID, email, err := j.Verify(tokenStr)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				writeAuthError(w, http.StatusUnauthorized, "Token expired", "Please login again")
			} else {
				writeAuthError(w, http.StatusUnauthorized, "Invalid token", "Token is malformed or invalid")
			}
			return
		}

		// Best-effort row-store cross-check; collaborator flakiness is
		// tolerated, not fatal.
		if j.Checker != nil {
			checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			if checkErr := j.Checker.Exists(checkCtx, userID); checkErr != nil {
				log.Printf("user cross-check failed for %s: %v", userID, checkErr)
			}
			cancel()
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, EmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOwner enforces that the token's user id matches the named URL
// parameter. Applied after Middleware on every :userId-scoped route.
func RequireOwner(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenUserID := GetUserID(r.Context())
			pathUserID := chi.URLParam(r, param)

			if pathUserID == "" || tokenUserID.String() != pathUserID {
				writeAuthError(w, http.StatusForbidden, "Access forbidden", "You can only access your own resources")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts the authenticated user id from the request context.
func GetUserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(UserIDKey).(uuid.UUID)
	return id
}

// GetEmail extracts the authenticated email from the request context.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := r.Cookie(AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, status int, tag, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:   tag,
		Message: message,
	})
}
