package home

import (
	"net/http"

	"go.uber.org/zap"
)

// Handler serves the root landing endpoint.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Serve handles GET /. A fixed banner so load balancers and the curious get
// something friendlier than a 404.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("wayfarer is up\n"))
}
