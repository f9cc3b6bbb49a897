package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vacayhq/vacay/internal/server/models"
	"github.com/vacayhq/vacay/internal/server/services"
)

type AlbumHandler struct {
	albums *services.AlbumService
}

func NewAlbumHandler(albums *services.AlbumService) *AlbumHandler {
	return &AlbumHandler{albums: albums}
}

type albumRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type albumResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ShareID     string    `json:"share_id"`
	IsPublic    bool      `json:"is_public"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toAlbumResponse(a *models.Album) albumResponse {
	return albumResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		ShareID:     a.ShareID,
		IsPublic:    a.IsPublic,
		CreatorID:   a.CreatorID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// Create handles POST /api/v1/albums.
func (h *AlbumHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req albumRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid json")
		return
	}
	if req.Title == "" {
		respondBadRequest(w, "title is required")
		return
	}

	a, err := h.albums.Create(r.Context(), UserIDFromContext(r.Context()), req.Title, req.Description, req.IsPublic)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toAlbumResponse(a))
}

// List handles GET /api/v1/albums: the caller's own albums plus albums
// shared with the caller's email, newest first.
func (h *AlbumHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.albums.ListForUser(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]albumResponse, 0, len(all))
	for _, a := range all {
		out = append(out, toAlbumResponse(a))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/albums/{albumID}.
func (h *AlbumHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.albums.Get(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "albumID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAlbumResponse(a))
}

// Update handles PUT /api/v1/albums/{albumID}.
func (h *AlbumHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req albumRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid json")
		return
	}
	if req.Title == "" {
		respondBadRequest(w, "title is required")
		return
	}

	a, err := h.albums.Update(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "albumID"), req.Title, req.Description, req.IsPublic)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAlbumResponse(a))
}

// Delete handles DELETE /api/v1/albums/{albumID}.
func (h *AlbumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.albums.Delete(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "albumID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type memberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type memberResponse struct {
	ID           string    `json:"id"`
	AlbumID      string    `json:"album_id"`
	AllowedEmail string    `json:"allowed_email"`
	Role         string    `json:"role"`
	AddedAt      time.Time `json:"added_at"`
}

func toMemberResponse(m *models.AlbumMember) memberResponse {
	return memberResponse{
		ID:           m.ID,
		AlbumID:      m.AlbumID,
		AllowedEmail: m.AllowedEmail,
		Role:         m.Role,
		AddedAt:      m.AddedAt,
	}
}

// AddMember handles POST /api/v1/albums/{albumID}/members.
func (h *AlbumHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid json")
		return
	}
	if req.Email == "" {
		respondBadRequest(w, "email is required")
		return
	}

	m, err := h.albums.AddMember(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "albumID"), req.Email, req.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toMemberResponse(m))
}

// ListMembers handles GET /api/v1/albums/{albumID}/members.
func (h *AlbumHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.albums.ListMembers(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "albumID"))
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	respondJSON(w, http.StatusOK, out)
}

// RemoveMember handles DELETE /api/v1/albums/{albumID}/members/{memberID}.
func (h *AlbumHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	err := h.albums.RemoveMember(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "albumID"), chi.URLParam(r, "memberID"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
