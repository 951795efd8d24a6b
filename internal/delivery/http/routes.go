package http

import (
	"github.com/gin-gonic/gin"

	"sjsage522/pricecompare/config"
	"sjsage522/pricecompare/logger"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Only listed proxies may set X-Forwarded-For, otherwise ClientIP is the peer address
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.ForHTTP().Warn().Err(err).Msg("Invalid TRUSTED_PROXIES, trusting none")
		router.SetTrustedProxies(nil)
	}

	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimitPerSecond))
	{
		v1.GET("/compare", handler.Compare)
		v1.GET("/compare/export", handler.Export)
	}

	return router
}
