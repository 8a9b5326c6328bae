package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/service"
	"github.com/SergeyBogomolovv/esim-order-service/pkg/lock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExpirer struct {
	calls int
	ttl   time.Duration
	ids   []string
	err   error
}

func (e *stubExpirer) ExpireAbandoned(_ context.Context, ttl time.Duration) ([]string, error) {
	e.calls++
	e.ttl = ttl
	return e.ids, e.err
}

// heldRedis SETNX всегда занят, либо отдаёт ошибку
type heldRedis struct {
	held  bool
	err   error
	evals int
}

func (r *heldRedis) SetNX(context.Context, string, any, time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(!r.held, r.err)
}

func (r *heldRedis) Eval(context.Context, string, []string, ...any) *redis.Cmd {
	r.evals++
	return redis.NewCmdResult(int64(1), nil)
}

func TestSweeper_SweepOnce(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	conf := service.SweeperConfig{Interval: time.Minute, PendingTTL: 24 * time.Hour, LockTTL: time.Minute}

	t.Run("without locker", func(t *testing.T) {
		exp := &stubExpirer{ids: []string{"1", "2"}}
		sw := service.NewSweeper(logger, exp, nil, conf)

		n, err := sw.SweepOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 24*time.Hour, exp.ttl)
	})

	t.Run("lock acquired and released", func(t *testing.T) {
		exp := &stubExpirer{ids: []string{"1"}}
		store := &heldRedis{}
		sw := service.NewSweeper(logger, exp, lock.NewLocker(store, "esim:lock:"), conf)

		n, err := sw.SweepOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, store.evals)
	})

	t.Run("lock held elsewhere", func(t *testing.T) {
		exp := &stubExpirer{}
		sw := service.NewSweeper(logger, exp, lock.NewLocker(&heldRedis{held: true}, "esim:lock:"), conf)

		n, err := sw.SweepOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Equal(t, 0, exp.calls)
	})

	t.Run("redis unavailable", func(t *testing.T) {
		exp := &stubExpirer{}
		sw := service.NewSweeper(logger, exp, lock.NewLocker(&heldRedis{err: errors.New("connection refused")}, "esim:lock:"), conf)

		_, err := sw.SweepOnce(context.Background())
		assert.Error(t, err)
		assert.Equal(t, 0, exp.calls)
	})

	t.Run("expire fails", func(t *testing.T) {
		exp := &stubExpirer{err: errors.New("db down")}
		sw := service.NewSweeper(logger, exp, nil, conf)

		_, err := sw.SweepOnce(context.Background())
		assert.Error(t, err)
	})
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	exp := &stubExpirer{}
	sw := service.NewSweeper(logger, exp, nil, service.SweeperConfig{Interval: time.Hour, PendingTTL: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
