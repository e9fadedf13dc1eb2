package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

type Project struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	Description   string               `bson:"description" json:"description"`
	AssignedUsers []primitive.ObjectID `bson:"assignedUsers" json:"assignedUsers"`
	CreatedBy     primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasMember reports whether the user is in the project's assigned set.
func (p *Project) HasMember(userID primitive.ObjectID) bool {
	for _, id := range p.AssignedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// UserSummary is the embedded shape used when a user reference is expanded
// into a response payload.
type UserSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  string             `json:"role,omitempty"`
}

// ProjectSummary is the embedded shape used when a task's project reference
// is expanded into a response payload.
type ProjectSummary struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
}

// PopulatedProject is a project with its user references expanded. A user id
// that no longer resolves is simply omitted from the embedded list, and an
// unresolvable createdBy is rendered as null.
type PopulatedProject struct {
	ID            primitive.ObjectID `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	AssignedUsers []UserSummary      `json:"assignedUsers"`
	CreatedBy     *UserSummary       `json:"createdBy"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}
