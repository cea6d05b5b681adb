package impl

import (
	"context"

	"userapi/internal/domain/lifecycle"
	"userapi/internal/domain/repository"
	"userapi/internal/errors"
	"userapi/internal/usecase"
)

type healthService struct {
	checker repository.HealthChecker
}

// NewHealthService creates the store reachability check.
func NewHealthService(checker repository.HealthChecker) usecase.HealthUsecase {
	return &healthService{checker: checker}
}

func (srv *healthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	return errors.Wrap(srv.checker.Ping(ctx), "health check failed")
}
