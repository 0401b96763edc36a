package router

import (
	"pico-watt/internal/handler"
	"pico-watt/internal/middleware"
	"pico-watt/internal/types"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all middleware and routes.
func NewRouter(serverHandler *handler.Server, configManager types.ConfigManager) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(configManager.GetCORSConfig()))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerSystemRoutes(router, serverHandler)
	registerAPIRoutes(router, serverHandler)

	return router
}

// registerSystemRoutes registers system-level routes
func registerSystemRoutes(router *gin.Engine, serverHandler *handler.Server) {
	router.GET("/health", serverHandler.Health)
}

// registerAPIRoutes registers the measurement API. Route names and payload
// shapes are a compatibility contract with existing consumers.
func registerAPIRoutes(router *gin.Engine, serverHandler *handler.Server) {
	api := router.Group("/api")
	{
		api.POST("/pico", serverHandler.IngestSample)
		// Alias kept for devices flashed with the older firmware path
		api.POST("/watt", serverHandler.IngestSample)

		api.GET("/watt_now", serverHandler.CurrentWatt)
		api.GET("/watt_24h", serverHandler.Watt24h)
		api.GET("/watt_7d", serverHandler.Watt7d)
		api.GET("/watt_30d", serverHandler.Watt30d)
		api.GET("/watt_12monate", serverHandler.Watt12Monate)
	}
}
