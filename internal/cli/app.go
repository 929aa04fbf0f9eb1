package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/subsync/internal/config"
	"github.com/nikolayk812/subsync/internal/db"
	"github.com/nikolayk812/subsync/internal/logger"
	"github.com/nikolayk812/subsync/internal/notify"
	"github.com/nikolayk812/subsync/internal/port"
	"github.com/nikolayk812/subsync/internal/repository"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// app holds the resources shared by the commands.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redis.Client
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger.New: %w", err)
	}

	if cfg.MigrationsEnabled {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("db.Migrate: %w", err)
		}
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return &app{cfg: cfg, logger: log, pool: pool}, nil
}

func (a *app) repositories() port.Repositories {
	return repository.Repositories(a.pool, a.cfg.OrderLockRetries)
}

func (a *app) unitOfWork() port.UnitOfWork {
	return repository.NewUnitOfWork(a.pool)
}

func (a *app) notifier(ctx context.Context) (port.SummaryNotifier, error) {
	a.redis = redis.NewClient(&redis.Options{Addr: a.cfg.RedisAddr})

	if err := a.redis.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis.Ping: %w", err)
	}

	n, err := notify.NewRedisNotifier(a.redis, a.cfg.RedisSummaryQueue)
	if err != nil {
		return nil, fmt.Errorf("notify.NewRedisNotifier: %w", err)
	}

	return n, nil
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}

	a.pool.Close()
	_ = a.logger.Sync()
}

// serveMetrics exposes the default prometheus registry on addr until the
// returned stop func is called. An empty addr disables it.
func serveMetrics(addr string, log *zap.Logger) (stop func()) {
	if addr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan struct{})
	go func() {
		defer close(done)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("failed to stop metrics server", zap.Error(err))
		}
		<-done
	}
}
