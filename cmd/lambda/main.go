// Lambda entrypoint: translates API Gateway proxy events onto the same
// Gin engine the standalone server uses. The core service has no
// knowledge of this adapter.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/markerlab/aruco-api/internal/aruco"
	"github.com/markerlab/aruco-api/internal/config"
	"github.com/markerlab/aruco-api/internal/http/handlers"
	"github.com/markerlab/aruco-api/internal/http/routes"
	"github.com/markerlab/aruco-api/internal/services/marker"
	"github.com/markerlab/aruco-api/internal/storage"
)

var ginLambda *ginadapter.GinLambda

func init() {
	gin.SetMode(gin.ReleaseMode)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	var cache marker.Cache
	if cfg.Cache.Enabled {
		cache = storage.NewMarkerCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Cache.TTL)
	}

	service := marker.NewService(aruco.NewRenderer(), cache, logger)
	markerHandler := handlers.NewMarkerHandler(service, logger)
	router := routes.NewRouter(markerHandler, logger)

	ginLambda = ginadapter.New(router.SetupRoutes())
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
