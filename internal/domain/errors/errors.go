package errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"userapi/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() any      // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   any
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message string, details any) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() any {
	return e.details
}

// Predefined error types
var (
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user not found",
		nil,
	)

	// ErrInvalidIdentifier is returned when an id string is not a well-formed store identifier.
	ErrInvalidIdentifier = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ID",
		"invalid user id",
		nil,
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		nil,
	)
)

// ValidationError reports malformed input values, keyed by field name.
type ValidationError struct {
	fields map[string]string
}

// NewValidationError creates a validation error for the given field messages
func NewValidationError(fields map[string]string) *ValidationError {
	copied := make(map[string]string, len(fields))
	for field, msg := range fields {
		copied[field] = msg
	}

	return &ValidationError{fields: copied}
}

func (e *ValidationError) Error() string {
	names := e.FieldNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.fields[name])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

func (e *ValidationError) Message() string {
	return "input validation failed"
}

// Details returns the field -> message map
func (e *ValidationError) Details() any {
	return e.Fields()
}

// Fields returns a copy of the offending fields and their messages
func (e *ValidationError) Fields() map[string]string {
	copied := make(map[string]string, len(e.fields))
	for field, msg := range e.fields {
		copied[field] = msg
	}

	return copied
}

// FieldNames returns the offending field names in sorted order
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.fields))
	for name := range e.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// DuplicateEmailError is returned when the unique email index rejects a write.
type DuplicateEmailError struct {
	Email string
}

// NewDuplicateEmailError creates a uniqueness violation for email
func NewDuplicateEmailError(email string) *DuplicateEmailError {
	return &DuplicateEmailError{Email: email}
}

func (e *DuplicateEmailError) Error() string {
	return e.Message()
}

func (e *DuplicateEmailError) HTTPCode() int {
	return http.StatusConflict
}

func (e *DuplicateEmailError) ErrorCode() string {
	return "DUPLICATE_EMAIL"
}

func (e *DuplicateEmailError) Message() string {
	return fmt.Sprintf("email '%s' is already in use", e.Email)
}

func (e *DuplicateEmailError) Details() any {
	return map[string]string{"field": "email"}
}

// TransientStoreError wraps connectivity and timeout failures. Callers may retry.
type TransientStoreError struct {
	err     error
	details string
}

// NewTransientStoreError creates a retryable store error
func NewTransientStoreError(err error, details string) AppError {
	return &TransientStoreError{
		err:     err,
		details: details,
	}
}

func (e *TransientStoreError) Error() string {
	return errors.Wrap(e.err, "store temporarily unavailable: "+e.details).Error()
}

func (e *TransientStoreError) Unwrap() error {
	return e.err
}

func (e *TransientStoreError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

func (e *TransientStoreError) ErrorCode() string {
	return "STORE_UNAVAILABLE"
}

func (e *TransientStoreError) Message() string {
	return "storage is temporarily unavailable, please retry"
}

func (e *TransientStoreError) Details() any {
	return e.details
}

// Retryable reports that the failed operation may succeed if repeated
func (e *TransientStoreError) Retryable() bool {
	return true
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed: "+e.details).Error()
}

func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() any {
	return e.details
}

// Retryable is implemented by errors that may clear up if the operation is repeated.
type Retryable interface {
	Retryable() bool
}

// IsTransient reports whether err is a retryable store failure
func IsTransient(err error) bool {
	var retryable Retryable

	return errors.As(err, &retryable) && retryable.Retryable()
}
