package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"delivery-platform/internal/config"
	"delivery-platform/internal/db"
	"delivery-platform/internal/logging"
	"delivery-platform/internal/migrate"
)

func main() {
	var (
		configPath  string
		down        int
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file (defaults to $CONFIG_FILE)")
	flag.IntVar(&down, "down", 0, "Roll back this many migrations instead of applying")
	flag.BoolVar(&showVersion, "version", false, "Print the applied schema version and exit")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log, "migrate")
	if err != nil {
		slog.Error("init logger", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Error("connect db", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	switch {
	case showVersion:
		err = migrate.Version(ctx, pool, logger)
	case down > 0:
		err = migrate.Rollback(ctx, pool, down)
		if err == nil {
			logger.Info("migrations rolled back", slog.Int("steps", down))
		}
	default:
		err = migrate.Apply(ctx, pool)
		if err == nil {
			logger.Info("migrations applied")
		}
	}
	if err != nil {
		logger.Error("migrate", slog.Any("error", err))
		pool.Close()
		os.Exit(1)
	}
}
