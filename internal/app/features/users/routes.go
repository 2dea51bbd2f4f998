// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
	"github.com/tnorman/wayfarer/internal/app/system/auth"
)

// Routes returns a subrouter for the /users endpoints. Registration is open;
// the no-id variants that act on "me" require credentials.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Both verbs create; older clients PUT their registrations.
	r.Post("/", h.Create)
	r.Put("/", h.Create)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Get("/", h.Self)
		r.Delete("/", h.DeleteSelf)
	})

	r.Get("/{id}", h.Get)
	r.Post("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
