// internal/app/system/auth/auth.go

// Package auth gates requests on HTTP basic-auth credentials. Each request
// ends in one of two outcomes: the resolved user is attached to the request
// context, or the request is rejected with a reason before the handler runs.
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/tnorman/wayfarer/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Rejection reasons. Store faults are propagated as themselves, never
// collapsed into one of these.
var (
	ErrNoSuchUser         = errors.New("no such user")
	ErrCredentialMismatch = errors.New("credential mismatch")
)

// UserSource resolves an email to a user record.
type UserSource interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Verifier checks a plaintext password against a stored credential pair.
type Verifier func(cred models.Credential, plaintext string) bool

// Gate resolves basic-auth credentials against a user source.
type Gate struct {
	users  UserSource
	verify Verifier
	log    *zap.Logger
}

// NewGate builds a Gate over the given user source.
func NewGate(users UserSource, verify Verifier, logger *zap.Logger) *Gate {
	return &Gate{users: users, verify: verify, log: logger}
}

// Resolve returns the user for the given credentials, ErrNoSuchUser when
// the email is unknown, ErrCredentialMismatch when the password is wrong,
// or the underlying lookup fault.
func (g *Gate) Resolve(ctx context.Context, email, pass string) (*models.User, error) {
	u, err := g.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}
	if !g.verify(u.Password, pass) {
		return nil, ErrCredentialMismatch
	}
	return u, nil
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user attached by LoadBasicAuthUser,
// and whether one was present.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	return u, ok
}

// WithTestUser attaches a user to the request context directly, bypassing
// credential resolution. Tests only.
func WithTestUser(r *http.Request, u *models.User) *http.Request {
	return withUser(r, u)
}

// LoadBasicAuthUser resolves the Authorization header (if any) and attaches
// the user to the request context. Resolution failures are recorded on the
// context so RequireUser can report the reason; the request itself is not
// short-circuited here, which leaves public endpoints unaffected by bad or
// absent credentials.
func (g *Gate) LoadBasicAuthUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, pass, ok := r.BasicAuth()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		u, err := g.Resolve(r.Context(), email, pass)
		if err != nil {
			if !errors.Is(err, ErrNoSuchUser) && !errors.Is(err, ErrCredentialMismatch) {
				g.log.Error("basic-auth lookup failed", zap.Error(err))
			}
			r = withRejection(r, err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireUser short-circuits with 401 unless LoadBasicAuthUser attached an
// authorized user to the context.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		reason := "credentials required"
		if err, ok := rejection(r); ok {
			reason = err.Error()
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="wayfarer"`)
		http.Error(w, reason, http.StatusUnauthorized)
	})
}

const rejectionKey ctxKey = "authRejection"

func withUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func withRejection(r *http.Request, err error) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), rejectionKey, err))
}

func rejection(r *http.Request) (error, bool) {
	err, ok := r.Context().Value(rejectionKey).(error)
	return err, ok
}
