// Package app holds the fx wiring shared by the service binaries.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"delivery-platform/internal/config"
	"delivery-platform/internal/db"
	"delivery-platform/internal/httpserver"
	"delivery-platform/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// Infra provides configuration, the logger and the Postgres pool.
func Infra(configPath, service string) fx.Option {
	return fx.Options(
		fx.Provide(
			func() (*config.Config, error) { return config.Load(configPath) },
			func(cfg *config.Config) (*slog.Logger, error) { return logging.New(cfg.Log, service) },
			newPool,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
	)
}

func newPool(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := db.Connect(context.Background(), cfg.DB.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "connect to db")
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			db.LogConnection(ctx, pool, logger)
			return nil
		},
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})
	return pool, nil
}

// ServeHTTP builds the HTTP server for deps and ties it to the fx lifecycle.
// A listener failure after start shuts the application down.
func ServeHTTP(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, deps httpserver.Deps) error {
	srv, err := httpserver.New(cfg.HTTP, logger, pool, deps)
	if err != nil {
		return errors.Wrap(err, "init server")
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				logger.Info("starting http server", slog.String("addr", srv.Addr()))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return errors.Wrap(err, "graceful shutdown")
			}
			logger.Info("server stopped")
			return nil
		},
	})
	return nil
}
