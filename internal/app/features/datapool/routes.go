// internal/app/features/datapool/routes.go
package datapool

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the /datapool endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.Post("/", h.Replace)
	return r
}
