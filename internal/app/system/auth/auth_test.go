package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tnorman/wayfarer/internal/app/system/auth"
	"github.com/tnorman/wayfarer/internal/app/system/password"
	"github.com/tnorman/wayfarer/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// fakeUsers is an in-memory UserSource keyed by email.
type fakeUsers struct {
	byEmail map[string]*models.User
	fault   error
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.fault != nil {
		return nil, f.fault
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func newTestGate(t *testing.T) (*auth.Gate, *models.User) {
	t.Helper()
	u := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "moe@tavern.com",
		Name:  "Moe",
	}
	password.Set(&u.Password, "pw")
	users := &fakeUsers{byEmail: map[string]*models.User{u.Email: u}}
	return auth.NewGate(users, password.Verify, zap.NewNop()), u
}

func TestResolve_Authorized(t *testing.T) {
	gate, want := newTestGate(t)

	got, err := gate.Resolve(context.Background(), "moe@tavern.com", "pw")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("resolved user ID: got %v, want %v", got.ID, want.ID)
	}
}

func TestResolve_CredentialMismatch(t *testing.T) {
	gate, _ := newTestGate(t)

	_, err := gate.Resolve(context.Background(), "moe@tavern.com", "wrong")
	if !errors.Is(err, auth.ErrCredentialMismatch) {
		t.Errorf("expected ErrCredentialMismatch, got %v", err)
	}
}

func TestResolve_NoSuchUser(t *testing.T) {
	gate, _ := newTestGate(t)

	_, err := gate.Resolve(context.Background(), "nobody@x.com", "pw")
	if !errors.Is(err, auth.ErrNoSuchUser) {
		t.Errorf("expected ErrNoSuchUser, got %v", err)
	}
}

func TestResolve_LookupFaultPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	users := &fakeUsers{fault: boom}
	gate := auth.NewGate(users, password.Verify, zap.NewNop())

	_, err := gate.Resolve(context.Background(), "moe@tavern.com", "pw")
	if !errors.Is(err, boom) {
		t.Errorf("expected the store fault to propagate, got %v", err)
	}
	if errors.Is(err, auth.ErrNoSuchUser) || errors.Is(err, auth.ErrCredentialMismatch) {
		t.Error("store faults must not be collapsed into a rejection reason")
	}
}

// protected wires the gate middlewares around a handler that reports the
// context user's email.
func protected(gate *auth.Gate) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, _ := auth.CurrentUser(r)
		_, _ = w.Write([]byte(u.Email))
	})
	return gate.LoadBasicAuthUser(auth.RequireUser(inner))
}

func TestMiddleware_AuthorizedReachesHandler(t *testing.T) {
	gate, _ := newTestGate(t)

	req := httptest.NewRequest("GET", "/authenticate", nil)
	req.SetBasicAuth("moe@tavern.com", "pw")
	rec := httptest.NewRecorder()

	protected(gate).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "moe@tavern.com" {
		t.Errorf("handler saw wrong user: %q", rec.Body.String())
	}
}

func TestMiddleware_RejectedBeforeHandler(t *testing.T) {
	gate, _ := newTestGate(t)

	tests := []struct {
		name       string
		email      string
		pass       string
		wantReason string
	}{
		{"wrong password", "moe@tavern.com", "wrong", "credential mismatch"},
		{"unknown user", "nobody@x.com", "pw", "no such user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/authenticate", nil)
			req.SetBasicAuth(tt.email, tt.pass)
			rec := httptest.NewRecorder()

			protected(gate).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if got := rec.Body.String(); got != tt.wantReason+"\n" {
				t.Errorf("reason: got %q, want %q", got, tt.wantReason)
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("expected a WWW-Authenticate challenge")
			}
		})
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	gate, _ := newTestGate(t)

	req := httptest.NewRequest("GET", "/authenticate", nil)
	rec := httptest.NewRecorder()

	protected(gate).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
