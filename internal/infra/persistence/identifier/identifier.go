// Package identifier converts between external user ids and store ObjectIDs.
package identifier

import (
	domainerrors "userapi/internal/domain/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Length is the size of the external hex form.
const Length = 24

// Decode parses a 24-character hex id. It only checks the shape; whether a
// record exists is the repository's concern.
func Decode(raw string) (primitive.ObjectID, error) {
	if len(raw) != Length {
		return primitive.NilObjectID, domainerrors.ErrInvalidIdentifier.WrapMessage("decode id")
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, domainerrors.ErrInvalidIdentifier.WrapMessage("decode id")
	}

	return id, nil
}

// Encode returns the external form of id.
func Encode(id primitive.ObjectID) string {
	return id.Hex()
}

// New generates a fresh id for stores that do not assign one themselves.
func New() primitive.ObjectID {
	return primitive.NewObjectID()
}
