package app

import (
	"github.com/medtrace/medtrace-backend/internal/http"
	httpH "github.com/medtrace/medtrace-backend/internal/http/handlers"
	httpMW "github.com/medtrace/medtrace-backend/internal/http/middleware"
	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	Chain      *httpH.ChainHandler
	Provenance *httpH.ProvenanceHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		Auth:       httpH.NewAuthHandler(services.Auth),
		Chain:      httpH.NewChainHandler(services.Chain),
		Provenance: httpH.NewProvenanceHandler(services.Provenance),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:               log,
		AllowedOrigins:    cfg.AllowedOrigins,
		AuthMiddleware:    middleware.Auth,
		HealthHandler:     handlers.Health,
		AuthHandler:       handlers.Auth,
		ChainHandler:      handlers.Chain,
		ProvenanceHandler: handlers.Provenance,
	})
}
