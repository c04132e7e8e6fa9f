package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freight-tms/internal/config"
	"freight-tms/internal/delivery/http/handler"
	"freight-tms/internal/infrastructure/database/postgres"
	"freight-tms/internal/ingestion"
	"freight-tms/internal/logger"
	"freight-tms/internal/middleware"
	loadUsecase "freight-tms/internal/usecase/load"
	"freight-tms/pkg/utils"
)

// SetupRoutes builds the gin engine: middleware chain, health endpoint and
// the versioned API surface. Reads are open to any authenticated role;
// mutations and transitions need dispatcher or admin; tracking submission
// additionally admits drivers.
func SetupRoutes(cfg *config.Config, db *postgres.DB, service *loadUsecase.Service, processor *ingestion.Processor) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	if cfg.RateLimit.GeneralRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))
	}

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	loadHandler := handler.NewLoadHandler(service)
	stopHandler := handler.NewStopHandler(service)
	offerHandler := handler.NewOfferHandler(service)
	trackingHandler := handler.NewTrackingHandler(service)

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			loadHandler.RegisterReadRoutes(protected)
			stopHandler.RegisterReadRoutes(protected)
			offerHandler.RegisterReadRoutes(protected)
			trackingHandler.RegisterReadRoutes(protected)

			dispatch := protected.Group("")
			dispatch.Use(middleware.DispatcherOrAdmin())
			{
				loadHandler.RegisterDispatchRoutes(dispatch)
				stopHandler.RegisterDispatchRoutes(dispatch)
				offerHandler.RegisterDispatchRoutes(dispatch)
			}

			field := protected.Group("")
			field.Use(middleware.DriverOrDispatcher())
			{
				trackingHandler.RegisterWriteRoutes(field)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("/ingestion/metrics", func(c *gin.Context) {
					if processor == nil {
						utils.ErrorResponse(c, http.StatusServiceUnavailable, "Tracking ingestion is not running")
						return
					}
					utils.SuccessResponse(c, http.StatusOK, "Ingestion metrics retrieved successfully", processor.GetMetrics())
				})
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
