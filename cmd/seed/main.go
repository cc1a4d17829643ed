package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"delivery-platform/internal/config"
	"delivery-platform/internal/credential"
	"delivery-platform/internal/db"
	"delivery-platform/internal/events"
	"delivery-platform/internal/logging"
	clientrepo "delivery-platform/internal/repository/client"
	orderrepo "delivery-platform/internal/repository/order"
	"delivery-platform/internal/seed"
	clientsvc "delivery-platform/internal/service/client"
	ordersvc "delivery-platform/internal/service/order"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults to $CONFIG_FILE)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log, "seed")
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

	clients, err := clientsvc.New(clientrepo.NewPostgres(pool, logger), credential.NewBcrypt(cfg.Auth.BcryptCost), logger)
	if err != nil {
		logger.Error("init client service", slog.Any("error", err))
		pool.Close()
		os.Exit(1)
	}
	orders := ordersvc.New(orderrepo.NewPostgres(pool, logger), events.Nop{}, logger)

	if err := seed.Apply(ctx, clients, orders, logger); err != nil {
		logger.Error("seed apply", slog.Any("error", err))
		pool.Close()
		os.Exit(1)
	}

	logger.Info("seed applied")
}
