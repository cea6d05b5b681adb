// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "userapi/internal/domain/entity"

// UserValidator checks user inputs before they reach the repository.
// Failures are reported as *domainerrors.ValidationError.
type UserValidator interface {
	// ValidateCreate checks required fields and value ranges of a new user.
	ValidateCreate(input *entity.UserCreate) error

	// ValidateUpdate checks only the fields present in a partial update and
	// rejects explicit nulls, since every user field is required.
	ValidateUpdate(input *entity.UserUpdate) error
}
