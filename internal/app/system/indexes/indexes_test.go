package indexes_test

import (
	"testing"

	"github.com/tnorman/wayfarer/internal/app/system/indexes"
	"github.com/tnorman/wayfarer/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// First call
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}

	// Second call should also succeed (idempotent)
	err = indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_UniqueEmailEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	users := db.Collection("users")
	if _, err := users.InsertOne(ctx, bson.M{"email": "a@example.com", "email_ci": "a@example.com"}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := users.InsertOne(ctx, bson.M{"email": "A@example.com", "email_ci": "a@example.com"}); err == nil {
		t.Fatal("expected a duplicate key error on email_ci, got none")
	}
}

func TestEnsureAll_FailsWhenDuplicatesPresent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Seed duplicate emails before the unique index exists.
	users := db.Collection("users")
	docs := []any{
		bson.M{"email": "dup@example.com", "email_ci": "dup@example.com"},
		bson.M{"email": "dup@example.com", "email_ci": "dup@example.com"},
	}
	if _, err := users.InsertMany(ctx, docs); err != nil {
		t.Fatalf("seeding duplicates failed: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db); err == nil {
		t.Fatal("expected EnsureAll to fail with duplicates present")
	}
}
