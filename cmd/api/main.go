package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"danawa-crawler/cache"
	"danawa-crawler/extractor"
	"danawa-crawler/internal/api"
	"danawa-crawler/internal/config"
	"danawa-crawler/internal/logging"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	cfg, err := config.Load(nil, os.Getenv("DANAWA_CONFIG"))
	if err != nil {
		logging.NewLogger(os.Stderr, "info", false).Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.NewLogger(os.Stderr, cfg.LogLevel, cfg.Verbose)
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	pageCache, err := cache.New(cfg)
	if err != nil {
		logger.Fatalf("Failed to create page cache: %v", err)
	}
	defer pageCache.Close()

	ext := extractor.NewDanawaExtractor(cfg, logger, pageCache)
	defer ext.Close()

	handler := api.NewHandler(ext, logger, 2*time.Minute)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.SetupRouter(handler, logger),
	}

	go func() {
		logger.Infof("Starting API server on port %s", cfg.Port)
		logger.Info("Available endpoints:")
		logger.Info("  GET /api/v1/categories                - Known category codes")
		logger.Info("  GET /api/v1/categories/:code/products - Crawl a category (format=json|text|table)")
		logger.Info("  GET /health                           - Health check")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down API server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}
