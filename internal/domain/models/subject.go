// internal/domain/models/subject.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subject is a monitored person/entity. A subject is owned by at most one
// user via that user's subject_id back-reference; the subject itself does
// not point at its owner.
type Subject struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	State bson.M             `bson:"state,omitempty" json:"state,omitempty"` // freeform nested document

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// SubjectView is the public projection of a Subject.
type SubjectView struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	State map[string]any `json:"state,omitempty"`

	// Datapool is attached on creation responses only: the client gets the
	// current shared datapool snapshot along with its new subject.
	Datapool map[string]any `json:"datapool,omitempty"`
}

// View returns the public projection of s.
func (s *Subject) View() SubjectView {
	return SubjectView{
		ID:    s.ID.Hex(),
		Name:  s.Name,
		State: map[string]any(s.State),
	}
}
