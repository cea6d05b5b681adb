package mongodb

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"userapi/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/event"
)

func newBufferedCommandLogger(debug bool) (*commandLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Config{}
	cfg.Env.Debug = debug

	return newCommandLogger(logger, cfg), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
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

func TestCommandLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("fast commands are quiet without debug", func(t *testing.T) {
		l, buf := newBufferedCommandLogger(false)

		l.Monitor().Succeeded(ctx, &event.CommandSucceededEvent{
			CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "find", Duration: time.Millisecond},
		})

		assert.Empty(t, buf.String())
	})

	t.Run("slow commands warn", func(t *testing.T) {
		l, buf := newBufferedCommandLogger(false)

		l.Monitor().Succeeded(ctx, &event.CommandSucceededEvent{
			CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "find", Duration: time.Second},
		})

		entries := decodeLines(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "MongoDB slow command", entries[0]["msg"])
		assert.Equal(t, "WARN", entries[0]["level"])
	})

	t.Run("failures warn", func(t *testing.T) {
		l, buf := newBufferedCommandLogger(false)

		l.Monitor().Failed(ctx, &event.CommandFailedEvent{
			CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "insert"},
			Failure:              "connection reset",
		})

		entries := decodeLines(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "MongoDB command failed", entries[0]["msg"])
		assert.Equal(t, "connection reset", entries[0]["error"])
	})

	t.Run("debug logs every command", func(t *testing.T) {
		l, buf := newBufferedCommandLogger(true)

		l.Monitor().Succeeded(ctx, &event.CommandSucceededEvent{
			CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "count", Duration: time.Millisecond},
		})

		entries := decodeLines(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "count", entries[0]["command"])
	})
}
