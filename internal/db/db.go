package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// Connect opens a pgx connection pool and verifies connectivity with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "parse dsn")
	}

	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "create pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping")
	}

	return pool, nil
}

// LogConnection checks the pool once and logs whether the database is reachable.
// It never fails startup; the readiness probe reports ongoing health.
func LogConnection(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to connect to the database on startup", slog.Any("error", err))
		return
	}
	defer conn.Release()

	cc := conn.Conn().Config()
	var version string
	if err := conn.QueryRow(ctx, `SHOW server_version`).Scan(&version); err != nil {
		logger.ErrorContext(ctx, "database connection unusable after startup", slog.Any("error", err))
		return
	}
	logger.InfoContext(ctx, "connected to the database",
		slog.String("host", cc.Host),
		slog.Uint64("port", uint64(cc.Port)),
		slog.String("database", cc.Database),
		slog.String("server_version", version),
	)
}
