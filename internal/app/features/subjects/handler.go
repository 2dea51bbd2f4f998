// internal/app/features/subjects/handler.go
package subjects

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	datapoolstore "github.com/tnorman/wayfarer/internal/app/store/datapool"
	subjectstore "github.com/tnorman/wayfarer/internal/app/store/subjects"
	"github.com/tnorman/wayfarer/internal/app/system/auth"
	"github.com/tnorman/wayfarer/internal/app/system/schema"
	"github.com/tnorman/wayfarer/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the subject endpoints. The no-id routes operate on the
// caller's own subject; the {id} routes are the unauthenticated admin/dev
// surface.
type Handler struct {
	Subjects *subjectstore.Store
	Datapool *datapoolstore.Store
	Log      *zap.Logger
}

func NewHandler(subjects *subjectstore.Store, datapool *datapoolstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Subjects: subjects, Datapool: datapool, Log: logger}
}

// Create handles PUT /subjects (authenticated). The new subject is attached
// to the caller, and the response carries the current datapool snapshot so
// the client can seed itself in one round trip.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "credentials required", http.StatusUnauthorized)
		return
	}
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if err := schema.Validate(doc, schema.SubjectCreate); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name, _ := doc["name"].(string)
	state := stateField(doc)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subj, err := h.Subjects.Create(ctx, name, state, u.ID)
	if err != nil {
		h.Log.Error("subject create failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view := subj.View()
	view.Datapool = h.Datapool.Get()
	writeJSON(w, http.StatusCreated, view)
}

// Self handles GET /subjects (authenticated): the caller's subject.
func (h *Handler) Self(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "credentials required", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	subj, err := h.Subjects.GetForUser(ctx, u.ID)
	if err != nil {
		h.respondLookupError(w, err, u.ID)
		return
	}
	writeJSON(w, http.StatusOK, subj.View())
}

// UpdateSelf handles POST /subjects (authenticated): a partial update of the
// caller's subject.
func (h *Handler) UpdateSelf(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "credentials required", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subj, err := h.Subjects.GetForUser(ctx, u.ID)
	if err != nil {
		h.respondLookupError(w, err, u.ID)
		return
	}
	h.update(ctx, w, r, subj.ID)
}

// DeleteSelf handles DELETE /subjects (authenticated).
func (h *Handler) DeleteSelf(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "credentials required", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subj, err := h.Subjects.GetForUser(ctx, u.ID)
	if err != nil {
		h.respondLookupError(w, err, u.ID)
		return
	}
	h.delete(ctx, w, subj.ID)
}

// Get handles GET /subjects/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	subj, err := h.Subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "subject not found", http.StatusNotFound)
			return
		}
		h.Log.Error("subject lookup failed", zap.String("id", id.Hex()), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, subj.View())
}

// Update handles POST /subjects/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	h.update(ctx, w, r, id)
}

// Delete handles DELETE /subjects/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	h.delete(ctx, w, id)
}

func (h *Handler) update(ctx context.Context, w http.ResponseWriter, r *http.Request, id primitive.ObjectID) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}

	var upd subjectstore.Update
	if v, ok := doc["name"].(string); ok {
		upd.Name = &v
	}
	if state := stateField(doc); state != nil {
		upd.State = state
	}

	subj, err := h.Subjects.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "subject not found", http.StatusNotFound)
			return
		}
		h.Log.Error("subject update failed", zap.String("id", id.Hex()), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, subj.View())
}

func (h *Handler) delete(ctx context.Context, w http.ResponseWriter, id primitive.ObjectID) {
	if err := h.Subjects.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "subject not found", http.StatusNotFound)
			return
		}
		h.Log.Error("subject delete failed", zap.String("id", id.Hex()), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id.Hex()})
}

func (h *Handler) respondLookupError(w http.ResponseWriter, err error, userID primitive.ObjectID) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		http.Error(w, "subject not found", http.StatusNotFound)
		return
	}
	h.Log.Error("subject lookup failed", zap.String("user_id", userID.Hex()), zap.Error(err))
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

/* ------------------------------- helpers -------------------------------- */

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return nil, false
	}
	return doc, true
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid subject id", http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return id, true
}

func stateField(doc map[string]any) bson.M {
	m, ok := doc["state"].(map[string]any)
	if !ok {
		return nil
	}
	return bson.M(m)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
