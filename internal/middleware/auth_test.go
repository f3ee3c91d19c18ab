package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/J1nSakai/mindbridge/internal/models"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	userID := uuid.New()

	token, err := auth.GenerateToken(userID, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	gotID, gotEmail, err := auth.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if gotID != userID {
		t.Errorf("expected user id %s, got %s", userID, gotID)
	}
	if gotEmail != "user@example.com" {
		t.Errorf("expected email user@example.com, got %q", gotEmail)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	token, _ := NewJWTAuth("secret-a").GenerateToken(uuid.New(), "user@example.com")

	if _, _, err := NewJWTAuth("secret-b").Verify(token); err == nil {
		t.Fatal("expected verification to fail with wrong secret")
	}
}

func expiredToken(t *testing.T, auth *JWTAuth, userID uuid.UUID) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   "user@example.com",
		"exp":     time.Now().Add(-time.Hour).Unix(),
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(auth.Secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestMiddleware_ExpiredVsMalformed(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	tests := []struct {
		name    string
		token   string
		wantTag string
	}{
		{"expired", expiredToken(t, auth, uuid.New()), "Token expired"},
		{"malformed", "not-a-jwt", "Invalid token"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user/test", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			rr := httptest.NewRecorder()

			auth.Middleware(next).ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}
			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if resp.Error != tc.wantTag {
				t.Errorf("expected error tag %q, got %q", tc.wantTag, resp.Error)
			}
		})
	}
}

func TestMiddleware_NoToken(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user/test", nil)
	rr := httptest.NewRecorder()

	auth.Middleware(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestMiddleware_CookieToken(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	userID := uuid.New()
	token, _ := auth.GenerateToken(userID, "user@example.com")

	var gotID uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user/test", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	rr := httptest.NewRecorder()

	auth.Middleware(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotID != userID {
		t.Errorf("expected user id %s in context, got %s", userID, gotID)
	}
}

func TestRequireOwner(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	makeRequest := func(tokenUser uuid.UUID, pathUser string) *httptest.ResponseRecorder {
		r := chi.NewRouter()
		r.With(RequireOwner("userId")).Get("/user/dashboard/{userId}", next.ServeHTTP)

		req := httptest.NewRequest(http.MethodGet, "/user/dashboard/"+pathUser, nil)
		req = req.WithContext(context.WithValue(req.Context(), UserIDKey, tokenUser))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	if rr := makeRequest(owner, owner.String()); rr.Code != http.StatusOK {
		t.Fatalf("owner request: expected 200, got %d", rr.Code)
	}

	rr := makeRequest(other, owner.String())
	if rr.Code != http.StatusForbidden {
		t.Fatalf("non-owner request: expected 403, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if resp.Error != "Access forbidden" {
		t.Errorf("expected Access forbidden, got %q", resp.Error)
	}
}
