// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"userapi/internal/domain/entity"
)

// ListUsersInput carries the raw list parameters. Page and Limit are resolved
// by the pagination policy, so zero values are valid.
type ListUsersInput struct {
	Filter entity.UserFilter
	Page   int
	Limit  int
}

// ListUsersOutput is one page of users plus the effective paging values.
type ListUsersOutput struct {
	Users []*entity.User
	Page  int
	Limit int
	Total int64
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	CreateUser(ctx context.Context, input *entity.UserCreate) (*entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error)
	UpdateUser(ctx context.Context, id string, input *entity.UserUpdate) (*entity.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// HealthUsecase reports whether the service can reach its store.
type HealthUsecase interface {
	Check(ctx context.Context) error
}
