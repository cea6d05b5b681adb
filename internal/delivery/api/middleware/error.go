package middleware

import (
	"log/slog"
	"net/http"

	"userapi/internal/delivery/api/response"
	deliverycontext "userapi/internal/delivery/context"
	domainerrors "userapi/internal/domain/errors"
	"userapi/internal/errors"
	"userapi/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger, m *metrics.Metrics) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger:  logger,
		metrics: m,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	// Already rendered further down the chain
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logServerError(c, err)
		}
		m.metrics.ObserveError(appErr.ErrorCode())
		if domainerrors.IsTransient(err) {
			c.Response().Header().Set(echo.HeaderRetryAfter, "1")
		}

		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())

		return
	}

	// Check if it is an Echo HTTPError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		code := httpErrorCode(httpErr.Code)
		m.metrics.ObserveError(code)

		_ = response.Error(c, httpErr.Code, code, message, nil)

		return
	}

	m.logServerError(c, err)
	m.metrics.ObserveError(domainerrors.ErrInternalError.ErrorCode())

	// For 500 errors, do not expose internal error details to the client
	_ = response.InternalServerError(c, domainerrors.ErrInternalError.ErrorCode(), "Internal server error, please try again later")
}

func (m *ErrorMiddleware) logServerError(c echo.Context, err error) {
	deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Error("Request failed",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		return "HTTP_ERROR"
	}
}
