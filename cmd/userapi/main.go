package main

import (
	"context"
	"log/slog"
	"os"

	"userapi/config"
	"userapi/internal/delivery"
	"userapi/internal/delivery/api"
	"userapi/internal/delivery/api/router/handler"
	"userapi/internal/domain/pagination"
	"userapi/internal/domain/repository"
	logs "userapi/internal/infra/log"
	"userapi/internal/infra/metrics"
	"userapi/internal/infra/persistence/memory"
	"userapi/internal/infra/persistence/mongodb"
	"userapi/internal/infra/validator"
	"userapi/internal/usecase/impl"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		metrics.New,
		newPaginationPolicy,
	)
}

func newPaginationPolicy(cfg *config.Config) pagination.Policy {
	return pagination.NewPolicy(cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newStore,
		),
	)
}

type storeResult struct {
	fx.Out

	UserRepo      repository.UserRepository
	HealthChecker repository.HealthChecker
}

// newStore selects the persistence driver named by storage.driver.
func newStore(params mongodb.Params, policy pagination.Policy) (storeResult, error) {
	if params.Config.Storage.Driver == config.StorageDriverMemory {
		params.Logger.Warn("Using in-memory storage, data is lost on restart")

		return storeResult{
			UserRepo:      memory.NewUserRepository(policy),
			HealthChecker: memory.NewHealthChecker(),
		}, nil
	}

	client, err := mongodb.New(params)
	if err != nil {
		return storeResult{}, err
	}

	return storeResult{
		UserRepo:      mongodb.NewUserRepository(mongodb.NewUserCollection(client, params.Config), policy, params.Config),
		HealthChecker: mongodb.NewHealthChecker(client),
	}, nil
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			validator.New,
			validator.NewUserValidator,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewHealthService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewHealthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer runs every delivery once the store hooks have started.
func startServer(params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, d := range params.Deliveries {
				go func() {
					if err := d.Serve(context.Background()); err != nil {
						params.Logger.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
