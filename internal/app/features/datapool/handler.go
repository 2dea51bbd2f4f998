// internal/app/features/datapool/handler.go
package datapool

import (
	"encoding/json"
	"net/http"

	datapoolstore "github.com/tnorman/wayfarer/internal/app/store/datapool"
	"go.uber.org/zap"
)

// Handler serves the shared datapool blob.
type Handler struct {
	Pool *datapoolstore.Store
	Log  *zap.Logger
}

func NewHandler(pool *datapoolstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Pool: pool, Log: logger}
}

// Get handles GET /datapool: the whole document, as-is.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.Pool.Get())
}

// Replace handles POST /datapool: a wholesale swap. There is no merge and no
// concurrency control; the last write wins. Persistence happens off the
// request path.
func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	h.Pool.Replace(doc)
	h.Log.Info("datapool replaced", zap.Int("top_level_keys", len(doc)))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}
