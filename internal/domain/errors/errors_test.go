package errors

import (
	"context"
	"io"
	"net/http"
	"testing"

	"userapi/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	transient := NewTransientStoreError(context.DeadlineExceeded, "ping")

	assert.True(t, IsTransient(transient))
	assert.True(t, IsTransient(errors.Wrap(transient, "health check")))
	assert.False(t, IsTransient(NewDatabaseExecuteError(io.ErrUnexpectedEOF, "count")))
	assert.False(t, IsTransient(ErrUserNotFound))
	assert.False(t, IsTransient(nil))
}

func TestTransientStoreError(t *testing.T) {
	err := NewTransientStoreError(context.Canceled, "list")

	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPCode())
	assert.Equal(t, "STORE_UNAVAILABLE", err.ErrorCode())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidationError(t *testing.T) {
	fields := map[string]string{"name": "is required", "age": "must be an integer"}
	err := NewValidationError(fields)
	fields["email"] = "mutated"

	assert.Equal(t, []string{"age", "name"}, err.FieldNames())
	assert.Equal(t, "validation failed: age: must be an integer; name: is required", err.Error())
	assert.Equal(t, map[string]string{"name": "is required", "age": "must be an integer"}, err.Details())
}

func TestDuplicateEmailError(t *testing.T) {
	err := NewDuplicateEmailError("ana@example.com")

	assert.Equal(t, http.StatusConflict, err.HTTPCode())
	assert.Equal(t, "email 'ana@example.com' is already in use", err.Error())
	assert.Equal(t, map[string]string{"field": "email"}, err.Details())
}
