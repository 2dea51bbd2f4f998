package authcheck_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnorman/wayfarer/internal/app/features/authcheck"
	"github.com/tnorman/wayfarer/internal/app/system/auth"
	"github.com/tnorman/wayfarer/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestServe_Authenticated(t *testing.T) {
	h := authcheck.NewHandler(zap.NewNop())

	u := models.User{ID: primitive.NewObjectID(), Email: "ada@example.com", Name: "Ada"}
	req := httptest.NewRequest(http.MethodGet, "/authenticate", nil)
	req = auth.WithTestUser(req, &u)
	rec := httptest.NewRecorder()
	h.Serve(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var view map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "ada@example.com", view["email"])
	assert.Equal(t, u.ID.Hex(), view["id"])
}

func TestServe_Unauthenticated(t *testing.T) {
	h := authcheck.NewHandler(zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/authenticate", nil)
	rec := httptest.NewRecorder()
	h.Serve(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
