package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/vacayhq/vacay/internal/server/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDFromContext returns the authenticated user id set by BearerAuth.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// BearerAuth validates the Authorization header's JWT and stores the subject
// user id in the request context. Requests without a valid token get 401.
func BearerAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			userID, err := auth.GetUserIDFromToken(token, secret)
			if err != nil {
				respondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
