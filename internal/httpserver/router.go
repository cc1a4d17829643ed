package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"delivery-platform/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Deps lists the services exposed over HTTP. A nil service leaves its routes unmounted,
// so the client and order binaries share one router.
type Deps struct {
	ClientSvc ClientService
	OrderSvc  OrderService
}

// buildRouter wires routes for the API.
func buildRouter(logger *slog.Logger, db pinger, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if err := registerValidators(); err != nil {
		return nil, errors.Wrap(err, "register validators")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID(logger), accessLog(logger))

	if len(allowedOrigins) > 0 {
		corsCfg := cors.Config{
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", headerRequestID},
			ExposeHeaders:    []string{headerRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}
		if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
			corsCfg.AllowAllOrigins = true
			corsCfg.AllowCredentials = false
		} else {
			corsCfg.AllowOrigins = allowedOrigins
		}
		if err := corsCfg.Validate(); err != nil {
			return nil, errors.Wrap(err, "cors config")
		}
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	if deps.ClientSvc != nil {
		registerClientRoutes(api.Group("/clients"), deps.ClientSvc)
	}
	if deps.OrderSvc != nil {
		registerOrderRoutes(api.Group("/orders"), deps.OrderSvc)
	}

	return router, nil
}
