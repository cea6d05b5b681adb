// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "userapi/internal/delivery/context"
	"userapi/internal/domain/entity"
	"userapi/internal/domain/pagination"
	"userapi/internal/domain/repository"
	"userapi/internal/domain/service"
	"userapi/internal/errors"
	"userapi/internal/usecase"

	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo  repository.UserRepository
	validator service.UserValidator
	policy    pagination.Policy
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Validator service.UserValidator
	Policy    pagination.Policy
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:  params.UserRepo,
		validator: params.Validator,
		policy:    params.Policy,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) CreateUser(ctx context.Context, input *entity.UserCreate) (*entity.User, error) {
	if err := srv.validator.ValidateCreate(input); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.Create(ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User created", slog.String("user_id", user.ID))

	return user, nil
}

func (srv *userService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}

	return user, nil
}

func (srv *userService) ListUsers(ctx context.Context, input *usecase.ListUsersInput) (*usecase.ListUsersOutput, error) {
	bounds := srv.policy.Resolve(input.Page, input.Limit)
	limit := int(bounds.Take)

	users, err := srv.userRepo.List(ctx, input.Filter, bounds.Page, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	total, err := srv.userRepo.Count(ctx, input.Filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	return &usecase.ListUsersOutput{
		Users: users,
		Page:  bounds.Page,
		Limit: limit,
		Total: total,
	}, nil
}

func (srv *userService) UpdateUser(ctx context.Context, id string, input *entity.UserUpdate) (*entity.User, error) {
	if err := srv.validator.ValidateUpdate(input); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.Update(ctx, id, input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Info("User updated", slog.String("user_id", user.ID))

	return user, nil
}

func (srv *userService) DeleteUser(ctx context.Context, id string) error {
	if err := srv.userRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.String("user_id", id))

	return nil
}
