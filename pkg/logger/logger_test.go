package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/textcat/pkg/logger"
)

type ctxKey string

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	log.Info("discarded")
}

func TestContextExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, nil)

	extractor := func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := ctx.Value(ctxKey("request_id")).(string); ok {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
	log := slog.New(logger.NewContextHandler(base, extractor))

	ctx := context.WithValue(context.Background(), ctxKey("request_id"), "abc-123")
	log.InfoContext(ctx, "handled")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "handled", record["msg"])
	assert.Equal(t, "abc-123", record["request_id"])
}

func TestNewWithSentryFallsBackWithoutDSN(t *testing.T) {
	t.Parallel()

	log := logger.NewWithSentry(logger.SentryConfig{})
	require.NotNil(t, log)
	log.Info("stdout only")
}
