package impl

import (
	"context"
	"testing"

	domainerrors "userapi/internal/domain/errors"
	mockRepo "userapi/internal/mocks/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthService_Check(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		checker := mockRepo.NewMockHealthChecker(t)
		checker.EXPECT().Ping(mock.Anything).Return(nil)

		assert.NoError(t, NewHealthService(checker).Check(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		checker := mockRepo.NewMockHealthChecker(t)
		checker.EXPECT().Ping(mock.Anything).Return(domainerrors.NewTransientStoreError(context.DeadlineExceeded, "ping"))

		err := NewHealthService(checker).Check(context.Background())
		assert.True(t, domainerrors.IsTransient(err))
	})
}
