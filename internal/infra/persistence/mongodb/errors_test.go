package mongodb

import (
	"context"
	"testing"

	domainerrors "userapi/internal/domain/errors"
	"userapi/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestNormalizeError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, normalizeError(nil, "noop"))
	})

	transient := []struct {
		name string
		err  error
	}{
		{name: "deadline exceeded", err: errors.Wrap(context.DeadlineExceeded, "find")},
		{name: "canceled", err: context.Canceled},
		{name: "client disconnected", err: mongo.ErrClientDisconnected},
		{name: "retryable label", err: mongo.CommandError{
			Code:   91,
			Name:   "ShutdownInProgress",
			Labels: []string{"RetryableWriteError"},
		}},
	}
	for _, tt := range transient {
		t.Run(tt.name, func(t *testing.T) {
			err := normalizeError(tt.err, "op")

			require.Error(t, err)
			assert.True(t, domainerrors.IsTransient(err))

			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, 503, appErr.HTTPCode())
		})
	}

	t.Run("transient error keeps its cause", func(t *testing.T) {
		err := normalizeError(errors.Wrap(context.DeadlineExceeded, "find"), "op")

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("anything else is unexpected", func(t *testing.T) {
		cause := mongo.CommandError{Code: 2, Name: "BadValue", Message: "bad value"}
		err := normalizeError(cause, "op")

		assert.False(t, domainerrors.IsTransient(err))

		var dbErr *domainerrors.DatabaseExecuteError
		require.True(t, errors.As(err, &dbErr))
		assert.Equal(t, 500, dbErr.HTTPCode())
	})
}
