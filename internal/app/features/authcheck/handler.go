// internal/app/features/authcheck/handler.go
package authcheck

import (
	"encoding/json"
	"net/http"

	"github.com/tnorman/wayfarer/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler answers credential probes. Clients hit this endpoint to find out
// whether their stored basic-auth pair still works before doing anything
// heavier.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Serve handles GET /authenticate. The gate middleware has already rejected
// bad credentials with 401; what remains is echoing who the caller is.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "credentials required", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u.View())
}
