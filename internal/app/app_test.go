package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingHandler struct{}

func (pingHandler) Init(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("pong"))
	})
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func testConfig() config.Config {
	return config.Config{
		Http: config.Http{Host: "127.0.0.1", Port: "0"},
		Cors: config.CORS{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func TestApplication_Routes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := New(logger, testConfig())
	a.SetHTTPHandlers(pingHandler{})

	for path, want := range map[string]int{
		"/ping":    http.StatusOK,
		"/healthz": http.StatusOK,
		"/metrics": http.StatusOK,
		"/missing": http.StatusNotFound,
	} {
		rr := httptest.NewRecorder()
		a.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rr.Code, path)
	}
}

func TestApplication_StartStop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := New(logger, testConfig())

	var started, stopped atomic.Bool
	a.SetWorkers(WorkerFunc(func(ctx context.Context) {
		started.Store(true)
		<-ctx.Done()
		stopped.Store(true)
	}))

	var closed []string
	a.SetClosers(
		closerFunc(func() error { closed = append(closed, "db"); return nil }),
		closerFunc(func() error { closed = append(closed, "redis"); return nil }),
	)

	require.NoError(t, a.Start(context.Background()))
	assert.Eventually(t, started.Load, time.Second, 10*time.Millisecond)

	require.NoError(t, a.Stop())
	assert.True(t, stopped.Load())
	assert.Equal(t, []string{"redis", "db"}, closed)
}
