package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vacayhq/vacay/internal/server/models"
	"github.com/vacayhq/vacay/internal/server/services"
)

type MediaHandler struct {
	media *services.MediaService
}

func NewMediaHandler(media *services.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

type authorizeUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

type uploadGrantResponse struct {
	UploadURL  string `json:"upload_url"`
	StorageKey string `json:"storage_key"`
	BlobURL    string `json:"blob_url"`
}

type registerMediaRequest struct {
	StorageKey   string   `json:"storage_key"`
	OriginalName string   `json:"original_name"`
	MimeType     string   `json:"mime_type"`
	SizeBytes    int64    `json:"size_bytes"`
	Width        *int     `json:"width,omitempty"`
	Height       *int     `json:"height,omitempty"`
	Duration     *float64 `json:"duration,omitempty"`
}

type mediaResponse struct {
	ID           string    `json:"id"`
	AlbumID      string    `json:"album_id"`
	UploaderID   string    `json:"uploader_id"`
	StorageKey   string    `json:"storage_key"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	BlobURL      string    `json:"blob_url"`
	Width        *int      `json:"width,omitempty"`
	Height       *int      `json:"height,omitempty"`
	Duration     *float64  `json:"duration,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

func toMediaResponse(m *models.Media) mediaResponse {
	return mediaResponse{
		ID:           m.ID,
		AlbumID:      m.AlbumID,
		UploaderID:   m.UploaderID,
		StorageKey:   m.StorageKey,
		OriginalName: m.OriginalName,
		MimeType:     m.MimeType,
		SizeBytes:    m.SizeBytes,
		BlobURL:      m.BlobURL,
		Width:        m.Width,
		Height:       m.Height,
		Duration:     m.Duration,
		UploadedAt:   m.UploadedAt,
	}
}

func toMediaResponses(all []*models.Media) []mediaResponse {
	out := make([]mediaResponse, 0, len(all))
	for _, m := range all {
		out = append(out, toMediaResponse(m))
	}
	return out
}

// AuthorizeUpload handles POST /api/v1/albums/{albumID}/media/authorize.
// On success the client PUTs the file bytes directly to upload_url and then
// registers the result via Register.
func (h *MediaHandler) AuthorizeUpload(w http.ResponseWriter, r *http.Request) {
	var req authorizeUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid json")
		return
	}
	if req.Filename == "" {
		respondBadRequest(w, "filename is required")
		return
	}

	grant, err := h.media.AuthorizeUpload(r.Context(), UserIDFromContext(r.Context()),
		chi.URLParam(r, "albumID"), req.Filename, req.ContentType, req.SizeBytes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, uploadGrantResponse{
		UploadURL:  grant.UploadURL,
		StorageKey: grant.StorageKey,
		BlobURL:    grant.BlobURL,
	})
}

// Register handles POST /api/v1/albums/{albumID}/media.
func (h *MediaHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerMediaRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid json")
		return
	}
	if req.StorageKey == "" || req.OriginalName == "" {
		respondBadRequest(w, "storage_key and original_name are required")
		return
	}

	m, err := h.media.Register(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "albumID"), services.RegisterParams{
		StorageKey:   req.StorageKey,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		SizeBytes:    req.SizeBytes,
		Width:        req.Width,
		Height:       req.Height,
		Duration:     req.Duration,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toMediaResponse(m))
}

// List handles GET /api/v1/albums/{albumID}/media.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.media.List(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "albumID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toMediaResponses(all))
}

// Delete handles DELETE /api/v1/media/{mediaID}.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.media.Delete(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "mediaID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
