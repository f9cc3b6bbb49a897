// Package httpapi exposes the Vacay server over HTTP/JSON. Handlers decode
// requests, call the services, and translate sentinel errors into statuses;
// all business rules live in internal/server/services.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/vacayhq/vacay/internal/server/services"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid json")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		respondBadRequest(w, "email and password are required")
		return
	}

	u, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, userResponse{ID: u.ID, Email: u.Email})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid json")
		return
	}

	pair, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /api/v1/auth/refresh. The presented refresh token is
// rotated: the old one stops working as soon as the new pair is issued.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid json")
		return
	}
	if req.RefreshToken == "" {
		respondBadRequest(w, "refresh_token is required")
		return
	}

	pair, err := h.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
