package restapi

import (
	"net/http"

	"ethereum_server/internal/infrastructure/configloader"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// SwaggerDocPath is where the static OpenAPI document is read from, relative to the working directory.
const SwaggerDocPath = "./docs/swagger.yaml"

// SetupRouter configures and returns the Gin router.
func SetupRouter(serverHandler *ServerHandler, networkHandler *NetworkHandler, cfg *configloader.Config, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if origins := allowedOrigins(cfg); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(logger))
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/servers", serverHandler.ListServers)
		v1.POST("/servers", serverHandler.CreateServer)
		v1.POST("/servers/validate", serverHandler.ValidateAllServers)
		v1.GET("/servers/:id", serverHandler.GetServer)
		v1.PUT("/servers/:id", serverHandler.UpdateServer)
		v1.DELETE("/servers/:id", serverHandler.DeleteServer)
		v1.POST("/servers/:id/validate", serverHandler.ValidateServer)
		v1.GET("/servers/:id/status", serverHandler.GetServerStatus)
		v1.GET("/servers/:id/info", serverHandler.GetServerInfo)

		v1.GET("/networks", networkHandler.ListNetworks)
		v1.GET("/networks/:id", networkHandler.GetNetwork)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.StaticFile("/docs/swagger.yaml", SwaggerDocPath)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/docs/swagger.yaml")))

	return router
}

// allowedOrigins возвращает nil, если разрешены все источники ("*" или пустой список).
func allowedOrigins(cfg *configloader.Config) []string {
	if cfg == nil {
		return nil
	}
	for _, o := range cfg.CORS.AllowedOrigins {
		if o == "*" {
			return nil
		}
	}
	return cfg.CORS.AllowedOrigins
}
