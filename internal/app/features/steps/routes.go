// internal/app/features/steps/routes.go
package steps

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the /steps endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	return r
}
