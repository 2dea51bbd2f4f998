package userstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	userstore "github.com/tnorman/wayfarer/internal/app/store/users"
	"github.com/tnorman/wayfarer/internal/app/system/password"
	"github.com/tnorman/wayfarer/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestCreate_NormalizesAndHashes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, zap.NewNop())

	u, err := store.Create(ctx, userstore.NewUser{
		Name:     "ada lovelace",
		Email:    "  Ada@Example.COM ",
		Password: "letmein",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEmpty(t, u.Password.Salt)
	assert.NotEqual(t, "letmein", u.Password.Hashed)
	assert.True(t, password.Verify(u.Password, "letmein"))
	assert.False(t, password.Verify(u.Password, "wrong"))
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, zap.NewNop())

	_, err := store.Create(ctx, userstore.NewUser{Name: "First", Email: "dup@example.com", Password: "pw"})
	require.NoError(t, err)

	// Different casing must still collide.
	_, err = store.Create(ctx, userstore.NewUser{Name: "Second", Email: "DUP@example.com", Password: "pw"})
	assert.ErrorIs(t, err, userstore.ErrDuplicateEmail)
}

func TestGetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, zap.NewNop())

	created, err := store.Create(ctx, userstore.NewUser{Name: "Ada", Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	got, err := store.GetByEmail(ctx, "ADA@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = store.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestList_ReturnsAllUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, zap.NewNop())

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := store.Create(ctx, userstore.NewUser{Name: "User", Email: email, Password: "pw"})
		require.NoError(t, err)
	}

	users, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestUpdate_PartialFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, zap.NewNop())

	created, err := store.Create(ctx, userstore.NewUser{Name: "Old Name", Email: "old@example.com", Password: "oldpw"})
	require.NoError(t, err)

	name := "new name"
	got, err := store.Update(ctx, created.ID, userstore.Update{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "old@example.com", got.Email, "email must survive a name-only update")
	assert.True(t, password.Verify(got.Password, "oldpw"), "password must survive a name-only update")
}

func TestUpdate_Password(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, zap.NewNop())

	created, err := store.Create(ctx, userstore.NewUser{Name: "Ada", Email: "ada@example.com", Password: "oldpw"})
	require.NoError(t, err)

	pw := "newpw"
	got, err := store.Update(ctx, created.ID, userstore.Update{Password: &pw})
	require.NoError(t, err)

	assert.True(t, password.Verify(got.Password, "newpw"))
	assert.False(t, password.Verify(got.Password, "oldpw"))
	assert.NotEqual(t, created.Password.Salt, got.Password.Salt, "a password change re-salts")
}

func TestUpdate_SubjectReference(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, zap.NewNop())
	fx := testutil.NewFixtures(t, db)

	created, err := store.Create(ctx, userstore.NewUser{Name: "Ada", Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	subj := fx.CreateSubject(ctx, "Physics", bson.M{}, nil)

	got, err := store.Update(ctx, created.ID, userstore.Update{SubjectID: &subj.ID})
	require.NoError(t, err)
	require.NotNil(t, got.SubjectID)
	assert.Equal(t, subj.ID, *got.SubjectID)

	// A dangling reference is accepted; the existence check only warns.
	dangling := primitive.NewObjectID()
	got, err = store.Update(ctx, created.ID, userstore.Update{SubjectID: &dangling})
	require.NoError(t, err)
	assert.Equal(t, dangling, *got.SubjectID)
}

func TestUpdate_MissingUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, zap.NewNop())

	name := "Ghost"
	_, err := store.Update(ctx, primitive.NewObjectID(), userstore.Update{Name: &name})
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, zap.NewNop())

	created, err := store.Create(ctx, userstore.NewUser{Name: "Ada", Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	assert.ErrorIs(t, store.Delete(ctx, created.ID), mongo.ErrNoDocuments)
}
