package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names of a user document, shared by the filter and update builders.
const (
	UserFieldID        = "_id"
	UserFieldName      = "name"
	UserFieldEmail     = "email"
	UserFieldAge       = "age"
	UserFieldIsActive  = "is_active"
	UserFieldCreatedAt = "created_at"
	UserFieldUpdatedAt = "updated_at"
)

// UserEmailIndex is the name of the unique index on email.
const UserEmailIndex = "email_unique"

// UserDocument mirrors a document of the 'users' collection.
// The driver assigns ID on insert when it is left zero.
type UserDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Age       int                `bson:"age"`
	IsActive  bool               `bson:"is_active"`
	CreatedAt time.Time          `bson:"created_at,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty"`
}
