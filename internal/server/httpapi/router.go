package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires all HTTP routes. Auth endpoints and share links are
// public; everything else requires a bearer token.
func NewRouter(auth *AuthHandler, albums *AlbumHandler, media *MediaHandler, share *ShareHandler, jwtSecret []byte) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", auth.Register)
		r.Post("/auth/login", auth.Login)
		r.Post("/auth/refresh", auth.Refresh)

		r.Get("/share/{shareID}", share.Get)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(jwtSecret))

			r.Post("/albums", albums.Create)
			r.Get("/albums", albums.List)
			r.Get("/albums/{albumID}", albums.Get)
			r.Put("/albums/{albumID}", albums.Update)
			r.Delete("/albums/{albumID}", albums.Delete)

			r.Post("/albums/{albumID}/members", albums.AddMember)
			r.Get("/albums/{albumID}/members", albums.ListMembers)
			r.Delete("/albums/{albumID}/members/{memberID}", albums.RemoveMember)

			r.Post("/albums/{albumID}/media/authorize", media.AuthorizeUpload)
			r.Post("/albums/{albumID}/media", media.Register)
			r.Get("/albums/{albumID}/media", media.List)
			r.Delete("/media/{mediaID}", media.Delete)
		})
	})

	return r
}
