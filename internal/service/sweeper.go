package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/pkg/lock"
)

const sweepLockName = "sweep-pending-orders"

type Expirer interface {
	ExpireAbandoned(ctx context.Context, ttl time.Duration) ([]string, error)
}

type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (*lock.Lock, error)
}

type SweeperConfig struct {
	Interval   time.Duration
	PendingTTL time.Duration
	LockTTL    time.Duration
}

// Sweeper периодически закрывает брошенные на оплате заказы.
// Блокировка в Redis не даёт нескольким экземплярам чистить одновременно.
type Sweeper struct {
	logger  *slog.Logger
	expirer Expirer
	locker  Locker
	conf    SweeperConfig
}

func NewSweeper(logger *slog.Logger, expirer Expirer, locker Locker, conf SweeperConfig) *Sweeper {
	return &Sweeper{
		logger:  logger.With(slog.String("service", "sweeper")),
		expirer: expirer,
		locker:  locker,
		conf:    conf,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.conf.Interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started",
		slog.Duration("interval", s.conf.Interval),
		slog.Duration("pending_ttl", s.conf.PendingTTL),
	)
	for {
		if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("sweep failed", slog.Any("error", err))
		}
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

// SweepOnce один проход. Если блокировку держит другой экземпляр, ничего не делает.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	if s.locker != nil {
		l, err := s.locker.Acquire(ctx, sweepLockName, s.conf.LockTTL)
		if errors.Is(err, lock.ErrNotAcquired) {
			s.logger.Debug("sweep skipped, lock held elsewhere")
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		defer func() {
			if err := l.Release(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("failed to release sweep lock", slog.Any("error", err))
			}
		}()
	}

	ids, err := s.expirer.ExpireAbandoned(ctx, s.conf.PendingTTL)
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		s.logger.Info("abandoned orders expired", slog.Int("count", len(ids)), slog.Any("order_ids", ids))
	}
	return len(ids), nil
}
