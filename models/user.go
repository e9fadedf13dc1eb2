package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Role      string             `bson:"role" json:"role"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Principal is the authenticated actor attached to every request by the
// auth middleware. Only the identity and the role are carried; everything
// else is looked up on demand.
type Principal struct {
	ID   primitive.ObjectID
	Role string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
