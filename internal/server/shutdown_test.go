package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownRunsHooksOnServeError(t *testing.T) {
	t.Parallel()

	hookRan := false
	srv := New("127.0.0.1:0", http.NewServeMux(),
		WithShutdownTimeout(time.Second),
		WithShutdownHook(func(ctx context.Context) error {
			hookRan = true
			return nil
		}),
	)

	serveErr := errors.New("accept tcp: use of closed network connection")
	err := srv.shutdown(serveErr)

	require.ErrorIs(t, err, serveErr)
	assert.True(t, hookRan, "hooks must run even when Serve fails")
}

func TestShutdownJoinsServeAndHookErrors(t *testing.T) {
	t.Parallel()

	serveErr := errors.New("serve failed")
	hookErr := errors.New("pool close failed")
	srv := New("127.0.0.1:0", http.NewServeMux(),
		WithShutdownTimeout(time.Second),
		WithShutdownHook(func(ctx context.Context) error { return hookErr }),
	)

	err := srv.shutdown(serveErr)
	assert.ErrorIs(t, err, serveErr)
	assert.ErrorIs(t, err, hookErr)
}
