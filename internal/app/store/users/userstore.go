package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/tnorman/wayfarer/internal/app/system/normalize"
	"github.com/tnorman/wayfarer/internal/app/system/password"
	"github.com/tnorman/wayfarer/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an
	// email that already exists. The pre-check is advisory; the unique index
	// on email makes the insert itself fail under a concurrent duplicate.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

type Store struct {
	c        *mongo.Collection
	subjects *mongo.Collection // advisory subject-existence checks on update
	log      *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		c:        db.Collection("users"),
		subjects: db.Collection("subjects"),
		log:      logger,
	}
}

// NewUser holds the fields accepted at registration.
type NewUser struct {
	Name     string
	Email    string
	Password string
}

// Create inserts a new user after normalizing fields and deriving the
// password credential. The returned record carries the credential pair;
// callers expose only its View.
func (s *Store) Create(ctx context.Context, in NewUser) (models.User, error) {
	email := normalize.Email(in.Email)

	// Advisory duplicate pre-check for a friendlier error. The unique index
	// is what actually enforces uniqueness.
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Err()
	if err == nil {
		return models.User{}, ErrDuplicateEmail
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		EmailCI:   text.Fold(email),
		Name:      normalize.TitleCase(in.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	password.Set(&u.Password, in.Password)

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(normalize.Email(email))}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every user, unpaginated. Dev/admin use only.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Update holds the fields a partial user update may supply. Nil fields are
// left untouched.
type Update struct {
	Name      *string
	Email     *string
	Password  *string
	SubjectID *primitive.ObjectID
}

// Update merges upd into the stored record and returns the result. A
// supplied password is applied through the credential manager as a distinct
// follow-up write; the two writes are not atomic. A supplied subject id is
// existence-checked first — the check is advisory, a missing subject is
// logged but does not block the update.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = normalize.TitleCase(*upd.Name)
	}
	if upd.Email != nil {
		email := normalize.Email(*upd.Email)
		set["email"] = email
		set["email_ci"] = text.Fold(email)
	}
	if upd.SubjectID != nil {
		if err := s.subjects.FindOne(ctx, bson.M{"_id": *upd.SubjectID}).Err(); err != nil {
			if err != mongo.ErrNoDocuments {
				return nil, err
			}
			s.log.Warn("user update references a missing subject",
				zap.String("user_id", id.Hex()),
				zap.String("subject_id", upd.SubjectID.Hex()))
		}
		set["subject_id"] = *upd.SubjectID
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}

	if upd.Password != nil {
		var cred models.Credential
		password.Set(&cred, *upd.Password)
		if _, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"password": cred}}); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

// Delete removes a user by ID. Returns mongo.ErrNoDocuments when nothing
// was deleted. The subject the user owned, if any, is left in place.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
