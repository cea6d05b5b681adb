package mongodb

import (
	"context"
	"io"
	"log/slog"
	"testing"

	domainerrors "userapi/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestEnsureUserCollection(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mt.Run("creates collection and index", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		err := EnsureUserCollection(context.Background(), logger, mt.DB, mt.Coll.Name())
		assert.NoError(mt, err)
	})

	mt.Run("existing collection is tolerated", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    namespaceExistsCode,
				Name:    "NamespaceExists",
				Message: "collection already exists",
			}),
			mtest.CreateSuccessResponse(),
		)

		err := EnsureUserCollection(context.Background(), logger, mt.DB, mt.Coll.Name())
		assert.NoError(mt, err)
	})

	mt.Run("other create failures abort", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		err := EnsureUserCollection(context.Background(), logger, mt.DB, mt.Coll.Name())
		assert.Error(mt, err)
	})

	mt.Run("index failure aborts", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    11000,
				Name:    "DuplicateKey",
				Message: "E11000 duplicate key error",
			}),
		)

		err := EnsureUserCollection(context.Background(), logger, mt.DB, mt.Coll.Name())
		assert.Error(mt, err)
	})
}

func TestHealthChecker_Ping(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reachable", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, NewHealthChecker(mt.Client).Ping(context.Background()))
	})

	mt.Run("retryable failure is transient", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "retry later",
			Labels:  []string{"RetryableWriteError"},
		}))

		err := NewHealthChecker(mt.Client).Ping(context.Background())
		require.Error(mt, err)
		assert.True(mt, domainerrors.IsTransient(err))
	})
}
