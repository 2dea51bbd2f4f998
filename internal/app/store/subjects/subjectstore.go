package subjectstore

import (
	"context"
	"time"

	"github.com/tnorman/wayfarer/internal/app/system/normalize"
	"github.com/tnorman/wayfarer/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c     *mongo.Collection
	users *mongo.Collection // owner back-references
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("subjects"),
		users: db.Collection("users"),
	}
}

// Create inserts a new subject and then points the owning user's subject_id
// at it. The two writes are not atomic; the subject insert wins if the
// owner update fails.
func (s *Store) Create(ctx context.Context, name string, state bson.M, ownerID primitive.ObjectID) (models.Subject, error) {
	now := time.Now().UTC()
	subj := models.Subject{
		ID:        primitive.NewObjectID(),
		Name:      normalize.TitleCase(name),
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.c.InsertOne(ctx, subj); err != nil {
		return models.Subject{}, err
	}

	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": ownerID},
		bson.M{"$set": bson.M{"subject_id": subj.ID, "updated_at": now}})
	if err != nil {
		return models.Subject{}, err
	}

	return subj, nil
}

// GetByID loads a subject by ObjectID. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Subject, error) {
	var subj models.Subject
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&subj); err != nil {
		return nil, err
	}
	return &subj, nil
}

// GetForUser resolves the user's subject_id and fetches that subject.
// Returns mongo.ErrNoDocuments when the user has no subject (or the
// reference dangles).
func (s *Store) GetForUser(ctx context.Context, userID primitive.ObjectID) (*models.Subject, error) {
	var u models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&u); err != nil {
		return nil, err
	}
	if u.SubjectID == nil {
		return nil, mongo.ErrNoDocuments
	}
	return s.GetByID(ctx, *u.SubjectID)
}

// Update holds the fields a partial subject update may supply. Nil fields
// are preserved; a supplied State replaces the stored state wholesale.
type Update struct {
	Name  *string
	State bson.M
}

// Update merges upd into the stored subject and returns the result.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Subject, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = normalize.TitleCase(*upd.Name)
	}
	if upd.State != nil {
		set["state"] = upd.State
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return s.GetByID(ctx, id)
}

// Delete removes a subject and clears any user's back-reference to it, so
// owners are not left pointing at a missing record.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	_, err = s.users.UpdateMany(ctx,
		bson.M{"subject_id": id},
		bson.M{"$unset": bson.M{"subject_id": ""}})
	return err
}
