package http

import (
	"github.com/gin-gonic/gin"

	"github.com/medtrace/medtrace-backend/internal/domain"
	httpH "github.com/medtrace/medtrace-backend/internal/http/handlers"
	httpMW "github.com/medtrace/medtrace-backend/internal/http/middleware"
	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler     *httpH.HealthHandler
	AuthHandler       *httpH.AuthHandler
	ChainHandler      *httpH.ChainHandler
	ProvenanceHandler *httpH.ProvenanceHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Public consumer alias: scanned labels land here without a token.
	if cfg.ProvenanceHandler != nil {
		r.GET("/consumer/:id", cfg.ProvenanceHandler.GetChain)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/producer", cfg.AuthHandler.CheckRole(domain.RoleProducer))
			protected.POST("/distributor", cfg.AuthHandler.CheckRole(domain.RoleDistributor))
			protected.POST("/retailer", cfg.AuthHandler.CheckRole(domain.RoleRetailer))
		}

		if cfg.ChainHandler != nil {
			protected.POST("/materials", cfg.ChainHandler.CreateMaterial)
			protected.GET("/materials", cfg.ChainHandler.ListMaterials)
			protected.POST("/products", cfg.ChainHandler.CreateProduct)
			protected.GET("/products", cfg.ChainHandler.ListProducts)
			protected.POST("/shipments", cfg.ChainHandler.CreateShipment)
			protected.GET("/shipments", cfg.ChainHandler.ListShipments)
			protected.POST("/sales", cfg.ChainHandler.CreateSale)
			protected.GET("/sales", cfg.ChainHandler.ListSales)
		}

		if cfg.ProvenanceHandler != nil {
			protected.GET("/chain/:id", cfg.ProvenanceHandler.GetChain)
		}
	}

	return r
}
