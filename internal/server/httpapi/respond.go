package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vacayhq/vacay/internal/common"
	"github.com/vacayhq/vacay/internal/mediatype"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError translates service-layer sentinels into HTTP statuses. The
// sentinel's message is the response body; wrapped detail stays server-side.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, common.ErrorNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		status, msg = http.StatusConflict, "already exists"
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		status, msg = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrorForbidden):
		status, msg = http.StatusForbidden, "forbidden"
	case errors.Is(err, common.ErrorUnsupportedMediaType):
		status = http.StatusUnsupportedMediaType
		msg = "unsupported media type; allowed: " + strings.Join(mediatype.Allowed(), ", ")
	case errors.Is(err, common.ErrorAlbumMismatch):
		status, msg = http.StatusBadRequest, "storage key does not belong to album"
	}

	respondJSON(w, status, errorResponse{Error: msg})
}

func respondBadRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
