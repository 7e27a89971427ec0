package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/internal/api/handlers"
	"github.com/bonfilet/quoteapi/internal/api/middleware"
	"github.com/bonfilet/quoteapi/internal/config"
	"github.com/bonfilet/quoteapi/internal/service"
)

// MaxBodyBytes caps inbound request bodies
const MaxBodyBytes = 64 << 10

// Services are the handlers' dependencies
type Services struct {
	Quotes  *service.QuoteService
	Catalog *service.CatalogService
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, services *Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := service.RegisterValidations(v); err != nil {
			logger.Warn("Failed to register quote validations with gin", zap.Error(err))
		}
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.BodyLimit(MaxBodyBytes))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.POST("/quotes", handlers.HandleCreateQuote(services.Quotes, logger))
		v1.GET("/quotes/:id", handlers.HandleGetQuote(services.Quotes, logger))
		v1.POST("/messages/validate", handlers.HandleValidateMessage(services.Catalog, logger))

		v1.GET("/pricing", handlers.HandleGetPricing(services.Catalog, logger))
		v1.GET("/colors", handlers.HandleGetColors(services.Catalog, logger))
		v1.GET("/eta/:country", handlers.HandleGetETA(services.Catalog, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
