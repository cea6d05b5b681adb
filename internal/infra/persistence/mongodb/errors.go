package mongodb

import (
	"context"

	domainerrors "userapi/internal/domain/errors"
	"userapi/internal/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Server error labels marking a failure as safe to retry.
var transientLabels = []string{"RetryableWriteError", "TransientTransactionError"}

// normalizeError maps any driver error that is neither a duplicate key nor a
// missing document onto the domain taxonomy. Connectivity problems, timeouts
// and cancellation are transient; everything else is unexpected.
func normalizeError(err error, details string) error {
	if err == nil {
		return nil
	}

	if isTransient(err) {
		return domainerrors.NewTransientStoreError(err, details)
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		for _, label := range transientLabels {
			if serverErr.HasErrorLabel(label) {
				return true
			}
		}
	}

	return false
}
