package devstore

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router serving the note store wire API.
// An empty token disables authentication.
func NewRouter(store *Store, token string) chi.Router {
	h := NewHandler(store)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(token))

	r.Get("/notes/{id}", h.GetNote)
	r.Post("/notes", h.CreateNote)
	r.Put("/notes/{id}", h.UpdateNote)

	r.Post("/folders", h.CreateFolder)
	r.Get("/folders/{id}", h.GetFolder)
	r.Get("/folders/{id}/notes", h.FolderNotes)

	r.Get("/tags", h.ListTags)
	r.Post("/tags", h.CreateTag)
	r.Post("/tags/{id}/notes", h.AttachTag)

	r.Get("/search", h.Search)

	r.Get("/selection", h.GetSelection)
	r.Put("/selection", h.PutSelection)

	return r
}

// AuthMiddleware returns middleware that validates a Bearer token.
// When token is empty, all requests pass through.
func AuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != token {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
