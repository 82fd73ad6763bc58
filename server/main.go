package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/markerlab/aruco-api/internal/aruco"
	"github.com/markerlab/aruco-api/internal/config"
	"github.com/markerlab/aruco-api/internal/http/handlers"
	"github.com/markerlab/aruco-api/internal/http/routes"
	"github.com/markerlab/aruco-api/internal/services/marker"
	"github.com/markerlab/aruco-api/internal/storage"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize services
	var cache marker.Cache
	if cfg.Cache.Enabled {
		markerCache := storage.NewMarkerCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Cache.TTL)
		if err := markerCache.Ping(context.Background()); err != nil {
			logger.Warn("Marker cache unreachable, continuing without it", zap.Error(err))
		} else {
			cache = markerCache
		}
	}

	service := marker.NewService(aruco.NewRenderer(), cache, logger)

	// Initialize handlers
	markerHandler := handlers.NewMarkerHandler(service, logger)

	router := routes.NewRouter(markerHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
