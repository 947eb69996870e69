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

	"alcyxob/hoops-trainer/internal/api"
	"alcyxob/hoops-trainer/internal/app"
	"alcyxob/hoops-trainer/internal/config"
	"alcyxob/hoops-trainer/internal/logger"
)

// @title Hoops Trainer API
// @version 1.0
// @description API for organizing basketball training videos, exercises, resources and plans.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Without it, send X-Tab-ID to stay anonymous.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Init("info", "console")
		logger.Fatal().Err(err).Msg("Could not load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	logger.Info().
		Str("storage", cfg.Storage.Backend).
		Str("sessions", cfg.Session.Backend).
		Msg("Starting Hoops Trainer server")

	// --- Stores and Services ---
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	application, err := app.New(startCtx, cfg)
	cancelStart()
	if err != nil {
		_ = application.Close()
		logger.Fatal().Err(err).Msg("Could not initialize services")
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close backends")
		}
	}()

	// --- Initialize Gin Engine ---
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// --- Setup Routes ---
	api.SetupRoutes(
		router,
		cfg.Server.CORSOrigins,
		application.Provider,
		application.Library,
		application.Titles,
		application.Resources,
		application.Plans,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // title backfill can run long
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exiting.")
}
