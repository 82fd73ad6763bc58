package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/markerlab/aruco-api/internal/http/handlers"
	"github.com/markerlab/aruco-api/internal/http/middleware"
)

type Router struct {
	markerHandler *handlers.MarkerHandler
	logger        *zap.Logger
}

func NewRouter(
	markerHandler *handlers.MarkerHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		markerHandler: markerHandler,
		logger:        logger,
	}
}

// SetupRoutes builds the routing table once at startup.
func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.SecurityHeaders())

	router.GET("/", r.markerHandler.Root)
	router.GET("/health", r.markerHandler.HealthCheck)
	router.GET("/info", r.markerHandler.Info)
	router.GET("/generate", r.markerHandler.GenerateMarker)
	router.POST("/generate", r.markerHandler.GenerateMarkerJSON)
	router.POST("/generate-multiple", r.markerHandler.GenerateMultiple)

	return router
}
