package main

import (
	"flag"
	"log/slog"

	"delivery-platform/internal/app"
	"delivery-platform/internal/config"
	"delivery-platform/internal/credential"
	"delivery-platform/internal/httpserver"
	clientrepo "delivery-platform/internal/repository/client"
	clientsvc "delivery-platform/internal/service/client"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults to $CONFIG_FILE)")
	flag.Parse()

	fx.New(
		app.Infra(*configPath, "clients"),
		fx.Provide(
			func(pool *pgxpool.Pool, logger *slog.Logger) clientrepo.Repository {
				return clientrepo.NewPostgres(pool, logger)
			},
			func(cfg *config.Config) credential.Hasher {
				return credential.NewBcrypt(cfg.Auth.BcryptCost)
			},
			clientsvc.New,
			func(svc *clientsvc.Service) httpserver.Deps {
				return httpserver.Deps{ClientSvc: svc}
			},
		),
		fx.Invoke(app.ServeHTTP),
	).Run()
}
