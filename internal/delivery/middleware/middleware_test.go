package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"userapi/config"
	deliverycontext "userapi/internal/delivery/context"
	domainerrors "userapi/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}

	return entries
}

func TestRequestIDMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process)

	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = deliverycontext.GetRequestID(c)
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), nil).Info("handled")

		return c.NoContent(http.StatusOK)
	})

	t.Run("propagates the client id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(deliverycontext.HeaderXRequestID, "client-id.42")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "client-id.42", rec.Header().Get(deliverycontext.HeaderXRequestID))
		assert.Equal(t, "client-id.42", seen)

		entries := decodeLogLines(t, &buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "client-id.42", entries[0]["request_id"])
	})

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		generated := rec.Header().Get(deliverycontext.HeaderXRequestID)
		assert.Len(t, generated, 36)
		assert.Equal(t, generated, seen)
	})

	t.Run("replaces unsafe client ids", func(t *testing.T) {
		for _, id := range []string{"bad id\nforged=1", strings.Repeat("a", maxRequestIDLength+1)} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(deliverycontext.HeaderXRequestID, id)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Len(t, rec.Header().Get(deliverycontext.HeaderXRequestID), 36)
			assert.NotEqual(t, id, seen)
		}
	})
}

func TestGetRequestID_FallsBackToResponseHeader(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	assert.Empty(t, deliverycontext.GetRequestID(c))

	c.Response().Header().Set(deliverycontext.HeaderXRequestID, "from-header")
	assert.Equal(t, "from-header", deliverycontext.GetRequestID(c))

	deliverycontext.SetRequestID(c, "stored")
	assert.Equal(t, "stored", deliverycontext.GetRequestID(c))
}

func TestLoggerMiddleware(t *testing.T) {
	newEcho := func(debug bool) (*echo.Echo, *bytes.Buffer) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		cfg := &config.Config{}
		cfg.Env.Debug = debug

		e := echo.New()
		e.Use(NewRequestIDMiddleware(logger).Process)
		e.Use(NewLoggerMiddleware(logger, cfg).Handle)
		e.GET("/missing", func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusNotFound, "not found")
		})
		e.GET("/users/:id", func(c echo.Context) error {
			return domainerrors.ErrUserNotFound.WrapMessage("failed to find user by id")
		})

		return e, &buf
	}

	t.Run("logs the final status", func(t *testing.T) {
		e, buf := newEcho(true)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)

		entries := decodeLogLines(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "HTTP Request", entries[0]["msg"])
		assert.Equal(t, "WARN", entries[0]["level"])
		assert.Equal(t, float64(http.StatusNotFound), entries[0]["status"])
		assert.Equal(t, rec.Header().Get(deliverycontext.HeaderXRequestID), entries[0]["request_id"])
		assert.NotContains(t, entries[0], "error_code")
	})

	t.Run("records the error code", func(t *testing.T) {
		e, buf := newEcho(true)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/507f1f77bcf86cd799439011", nil))

		entries := decodeLogLines(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "USER_NOT_FOUND", entries[0]["error_code"])
		assert.Equal(t, "/users/:id", entries[0]["route"])
	})

	t.Run("silent unless debug", func(t *testing.T) {
		e, buf := newEcho(false)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Zero(t, buf.Len())
	})
}
