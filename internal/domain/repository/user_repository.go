// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"userapi/internal/domain/entity"
)

// UserRepository defines the persistence operations for users.
//
// Ids are the external string form; implementations decode them before any
// store access and fail with domainerrors.ErrInvalidIdentifier when malformed.
// Every error returned is a domainerrors.AppError; no driver error escapes.
type UserRepository interface {
	// Create persists a new user. A clash on the unique email index yields
	// *domainerrors.DuplicateEmailError and nothing is written.
	Create(ctx context.Context, input *entity.UserCreate) (*entity.User, error)

	// FindByID retrieves a single user, or domainerrors.ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// List returns one page of matching users in creation order. An empty
	// result is an empty slice, not an error.
	List(ctx context.Context, filter entity.UserFilter, page, limit int) ([]*entity.User, error)

	// Count returns the number of users matching filter.
	Count(ctx context.Context, filter entity.UserFilter) (int64, error)

	// Update merges the present fields of input into the stored user and
	// returns the result. An empty input returns the stored user unchanged.
	Update(ctx context.Context, id string, input *entity.UserUpdate) (*entity.User, error)

	// Delete removes the user permanently.
	Delete(ctx context.Context, id string) error
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
