package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vacayhq/vacay/internal/server/services"
)

// ShareHandler serves public share links without authentication. Only albums
// marked public resolve; everything else behaves as forbidden.
type ShareHandler struct {
	albums *services.AlbumService
	media  *services.MediaService
}

func NewShareHandler(albums *services.AlbumService, media *services.MediaService) *ShareHandler {
	return &ShareHandler{albums: albums, media: media}
}

type sharedAlbumResponse struct {
	Album albumResponse   `json:"album"`
	Media []mediaResponse `json:"media"`
}

// Get handles GET /api/v1/share/{shareID}.
func (h *ShareHandler) Get(w http.ResponseWriter, r *http.Request) {
	shareID := chi.URLParam(r, "shareID")

	album, err := h.albums.ResolveShare(r.Context(), shareID)
	if err != nil {
		respondError(w, err)
		return
	}
	media, err := h.media.ListForShare(r.Context(), shareID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sharedAlbumResponse{
		Album: toAlbumResponse(album),
		Media: toMediaResponses(media),
	})
}
