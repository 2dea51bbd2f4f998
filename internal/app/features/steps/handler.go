// internal/app/features/steps/handler.go
package steps

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Handler serves the demo step content. The collection endpoint returns a
// small fixed payload; the per-id endpoint was never wired to real content
// and answers 500, which existing clients depend on to detect that state.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// List handles GET /steps.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"steps": []map[string]any{
			{"id": 1, "title": "Getting started"},
			{"id": 2, "title": "First route"},
		},
	})
}

// Get handles GET /steps/{id}. Not implemented; kept returning 500 on
// purpose so callers probing for it see the historical behavior.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "step lookup is not implemented", http.StatusInternalServerError)
}
