// Package mongodb contains the concrete implementation of the persistence layer using MongoDB.
package mongodb

import (
	"context"
	"log/slog"

	"userapi/config"
	"userapi/internal/domain/lifecycle"
	"userapi/internal/domain/repository"
	"userapi/internal/errors"
	"userapi/internal/infra/persistence/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
)

// namespaceExistsCode is returned by create on an existing collection.
const namespaceExistsCode = 48

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the pooled MongoDB client. Connecting, collection setup and
// disconnecting are bound to the fx lifecycle.
func New(params Params) (*mongo.Client, error) {
	cfg := params.Config.Mongo

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMonitor(newCommandLogger(params.Logger, params.Config).Monitor())
	if cfg.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if params.Config.Env.ServiceName != "" {
		clientOpts.SetAppName(params.Config.Env.ServiceName)
	}

	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, cfg.ConnectTimeout)
			defer cancel()

			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}

			return EnsureUserCollection(ctx, params.Logger, client.Database(cfg.Database), cfg.Collection)
		},
		OnStop: func(stopCtx context.Context) error {
			ctx, cancel := context.WithTimeout(stopCtx, lifecycle.DefaultTimeout)
			defer cancel()

			params.Logger.Info("Closing MongoDB connection")

			return errors.WithStack(client.Disconnect(ctx))
		},
	})

	return client, nil
}

// NewUserCollection returns the users collection handle.
func NewUserCollection(client *mongo.Client, cfg *config.Config) *mongo.Collection {
	return client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
}

// EnsureUserCollection creates the collection when missing and guarantees the
// unique index on email. Safe to run on every start.
func EnsureUserCollection(ctx context.Context, logger *slog.Logger, db *mongo.Database, name string) error {
	err := db.CreateCollection(ctx, name)
	switch {
	case err == nil:
		logger.Info("Collection created", slog.String("collection", name))
	case isServerErrorCode(err, namespaceExistsCode):
		logger.Info("Collection already exists", slog.String("collection", name))
	default:
		return errors.Wrapf(err, "failed to create collection %s", name)
	}

	indexName, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: model.UserFieldEmail, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(model.UserEmailIndex),
	})
	if err != nil {
		return errors.Wrap(err, "failed to ensure unique email index")
	}

	logger.Info("Unique email index ensured", slog.String("index", indexName))

	return nil
}

func isServerErrorCode(err error, code int) bool {
	var serverErr mongo.ServerError

	return errors.As(err, &serverErr) && serverErr.HasErrorCode(code)
}

type healthChecker struct {
	client *mongo.Client
}

// NewHealthChecker reports store reachability through a primary ping.
func NewHealthChecker(client *mongo.Client) repository.HealthChecker {
	return &healthChecker{client: client}
}

func (h *healthChecker) Ping(ctx context.Context) error {
	if err := h.client.Ping(ctx, readpref.Primary()); err != nil {
		return normalizeError(err, "ping")
	}

	return nil
}
