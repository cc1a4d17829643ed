package main

import (
	"context"
	"flag"
	"log/slog"

	"delivery-platform/internal/app"
	"delivery-platform/internal/config"
	"delivery-platform/internal/events"
	"delivery-platform/internal/httpserver"
	orderrepo "delivery-platform/internal/repository/order"
	ordersvc "delivery-platform/internal/service/order"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults to $CONFIG_FILE)")
	flag.Parse()

	fx.New(
		app.Infra(*configPath, "orders"),
		fx.Provide(
			func(pool *pgxpool.Pool, logger *slog.Logger) orderrepo.Repository {
				return orderrepo.NewPostgres(pool, logger)
			},
			newPublisher,
			ordersvc.New,
			func(svc *ordersvc.Service) httpserver.Deps {
				return httpserver.Deps{OrderSvc: svc}
			},
		),
		fx.Invoke(app.ServeHTTP),
	).Run()
}

// newPublisher sends order events to Kafka when brokers are configured.
func newPublisher(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) events.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("kafka brokers not configured, order events disabled")
		return events.Nop{}
	}
	pub := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return pub.Close() },
	})
	return pub
}
