// internal/app/features/authcheck/routes.go
package authcheck

import (
	"github.com/go-chi/chi/v5"
	"github.com/tnorman/wayfarer/internal/app/system/auth"
)

// Routes returns a subrouter that serves the credential probe.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireUser)
	r.Get("/", h.Serve)
	return r
}
