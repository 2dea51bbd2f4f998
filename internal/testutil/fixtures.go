package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/tnorman/wayfarer/internal/app/system/password"
	"github.com/tnorman/wayfarer/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given name, email, and plaintext
// password, returning the stored record.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, plaintext string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		EmailCI:   text.Fold(email),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	password.Set(&u.Password, plaintext)

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateSubject inserts a subject and, when ownerID is non-nil, points that
// user's subject_id at it.
func (f *Fixtures) CreateSubject(ctx context.Context, name string, state bson.M, ownerID *primitive.ObjectID) models.Subject {
	f.t.Helper()

	now := time.Now().UTC()
	subj := models.Subject{
		ID:        primitive.NewObjectID(),
		Name:      name,
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("subjects").InsertOne(ctx, subj); err != nil {
		f.t.Fatalf("failed to create test subject: %v", err)
	}

	if ownerID != nil {
		_, err := f.db.Collection("users").UpdateOne(ctx,
			bson.M{"_id": *ownerID},
			bson.M{"$set": bson.M{"subject_id": subj.ID}})
		if err != nil {
			f.t.Fatalf("failed to link test subject to owner: %v", err)
		}
	}
	return subj
}
