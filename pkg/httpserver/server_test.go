package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formintake/pkg/httpserver"
)

func TestConfigAddr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ":3000", httpserver.Config{Port: 3000}.Addr())
	assert.Equal(t, "127.0.0.1:8080", httpserver.Config{Host: "127.0.0.1", Port: 8080}.Addr())
}

func TestServeAndShutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	hookCalled := make(chan struct{}, 1)
	srv := httpserver.New(
		httpserver.WithShutdownTimeout(time.Second),
		httpserver.WithStopHook(func(context.Context) error {
			hookCalled <- struct{}{}
			return nil
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
	}()

	var resp *http.Response
	for range 50 {
		resp, err = http.Get("http://" + ln.Addr().String())
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "server did not stop")
	}

	select {
	case <-hookCalled:
	default:
		assert.Fail(t, "stop hook not called")
	}

	assert.NoError(t, srv.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestRunInvalidAddr(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr("256.0.0.1:-1"))
	err := srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpserver.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"ok": true}, decodeHealth(t, rec))
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	pass := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all checks pass", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		httpserver.ReadinessHandler(log, time.Second, map[string]httpserver.Check{"db": pass})(
			rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeHealth(t, rec)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, map[string]any{"db": "ok"}, body["checks"])
	})

	t.Run("failing check", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		httpserver.ReadinessHandler(log, time.Second, map[string]httpserver.Check{"db": pass, "redis": fail})(
			rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		body := decodeHealth(t, rec)
		assert.Equal(t, false, body["ok"])
		assert.Equal(t, map[string]any{"db": "ok", "redis": "error"}, body["checks"])
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}
