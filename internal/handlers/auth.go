package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/J1nSakai/mindbridge/internal/middleware"
	"github.com/J1nSakai/mindbridge/internal/models"
	"github.com/J1nSakai/mindbridge/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	production  bool
}

func NewAuthHandler(authService *services.AuthService, production bool) *AuthHandler {
	return &AuthHandler{authService: authService, production: production}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Validation failed", "Invalid request body"))
		return
	}

	user, token, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.setAuthCookie(w, token)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user": models.PublicUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Validation failed", "Invalid request body"))
		return
	}

	user, token, err := h.authService.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.setAuthCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user": models.PublicUser{
			ID:                user.ID,
			Email:             user.Email,
			Name:              user.Name,
			EmailVerification: &user.EmailVerified,
		},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": models.PublicUser{
			ID:                user.ID,
			Email:             user.Email,
			Name:              user.Name,
			EmailVerification: &user.EmailVerified,
			Registration:      &user.CreatedAt,
		},
	})
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteStrictMode
	if h.production {
		// Frontend is served from a different origin in production.
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(middleware.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: sameSite,
	})
}
