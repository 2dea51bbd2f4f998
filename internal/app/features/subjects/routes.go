// internal/app/features/subjects/routes.go
package subjects

import (
	"github.com/go-chi/chi/v5"
	"github.com/tnorman/wayfarer/internal/app/system/auth"
)

// Routes returns a subrouter for the /subjects endpoints. The no-id routes
// act on the caller's own subject and require credentials; the {id} routes
// are left open for admin and development tooling.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Put("/", h.Create)
		r.Get("/", h.Self)
		r.Post("/", h.UpdateSelf)
		r.Delete("/", h.DeleteSelf)
	})

	r.Get("/{id}", h.Get)
	r.Post("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
