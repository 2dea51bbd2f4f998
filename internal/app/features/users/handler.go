// internal/app/features/users/handler.go
package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	userstore "github.com/tnorman/wayfarer/internal/app/store/users"
	"github.com/tnorman/wayfarer/internal/app/system/auth"
	"github.com/tnorman/wayfarer/internal/app/system/schema"
	"github.com/tnorman/wayfarer/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the user account endpoints.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// Create handles POST /users and PUT /users. The body is validated against
// the registration schema before anything touches the store.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if err := schema.Validate(doc, schema.UserRegister); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Create(ctx, userstore.NewUser{
		Name:     stringField(doc, "name"),
		Email:    stringField(doc, "email"),
		Password: stringField(doc, "password"),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		h.Log.Error("user create failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, u.View())
}

// Self handles GET /users (authenticated): the caller's own projection.
func (h *Handler) Self(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "credentials required", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, u.View())
}

// Get handles GET /users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		h.Log.Error("user lookup failed", zap.String("id", id.Hex()), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, u.View())
}

// Update handles POST /users/{id}: a partial update, absent fields are left
// untouched.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if err := schema.Validate(doc, schema.UserUpdate); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	upd, ok := buildUpdate(w, doc)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Update(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			http.Error(w, "user not found", http.StatusNotFound)
		case errors.Is(err, userstore.ErrDuplicateEmail):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			h.Log.Error("user update failed", zap.String("id", id.Hex()), zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, u.View())
}

// Delete handles DELETE /users/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.delete(w, r, id)
}

// DeleteSelf handles DELETE /users (authenticated): the caller deletes their
// own account.
func (h *Handler) DeleteSelf(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "credentials required", http.StatusUnauthorized)
		return
	}
	h.delete(w, r, u.ID)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		h.Log.Error("user delete failed", zap.String("id", id.Hex()), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"deleted": id.Hex()})
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
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return id, true
}

func buildUpdate(w http.ResponseWriter, doc map[string]any) (userstore.Update, bool) {
	var upd userstore.Update
	if v, ok := doc["name"].(string); ok {
		upd.Name = &v
	}
	if v, ok := doc["email"].(string); ok {
		upd.Email = &v
	}
	if v, ok := doc["password"].(string); ok {
		upd.Password = &v
	}
	if v, ok := doc["subjectId"].(string); ok {
		sid, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			http.Error(w, "invalid subject id", http.StatusBadRequest)
			return userstore.Update{}, false
		}
		upd.SubjectID = &sid
	}
	return upd, true
}

func stringField(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
