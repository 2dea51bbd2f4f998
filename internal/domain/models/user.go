// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Credential is the stored password pair. The plaintext is never persisted;
// Hashed is the hex HMAC-SHA1 of the plaintext keyed by Salt.
type Credential struct {
	Salt   string `bson:"salt" json:"-"`
	Hashed string `bson:"hashed" json:"-"`
}

// User is a registered account. Name is a single display string (the
// first/last split that appeared in some schema revisions is not supported).
type User struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Email     string              `bson:"email" json:"email"` // lowercase, trimmed, unique
	EmailCI   string              `bson:"email_ci" json:"-"`  // folded shadow for lookups
	Name      string              `bson:"name" json:"name"`
	Password  Credential          `bson:"password" json:"-"`
	SubjectID *primitive.ObjectID `bson:"subject_id,omitempty" json:"subject_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// UserView is the public projection of a User. It never carries the
// credential pair.
type UserView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	SubjectID string `json:"subjectId,omitempty"`
}

// View returns the public projection of u.
func (u *User) View() UserView {
	v := UserView{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Name:  u.Name,
	}
	if u.SubjectID != nil {
		v.SubjectID = u.SubjectID.Hex()
	}
	return v
}
