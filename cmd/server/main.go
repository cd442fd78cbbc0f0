package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/prithvisense/thermal-monitor/internal/config"
	"github.com/prithvisense/thermal-monitor/internal/forecast"
	"github.com/prithvisense/thermal-monitor/internal/models"
	"github.com/prithvisense/thermal-monitor/internal/pipeline"
	"github.com/prithvisense/thermal-monitor/internal/server"
)

const version = "v0.3.0"

func main() {
	// Parse flags
	configPath := flag.String("config", "configs/server.yaml", "path to config file")
	flag.Parse()

	// Local .env overrides are optional
	_ = godotenv.Load()

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg.Logging)

	logger.Info().
		Str("version", version).
		Int("port", cfg.Server.Port).
		Str("source", cfg.Data.SourcePath).
		Msg("Starting Campus Thermal Monitor")

	catalog := models.DefaultCatalog()
	pipe := pipeline.New(catalog, cfg.Data.SourcePath, cfg.Data.FallbackHours, logger)
	cache := server.NewSnapshotCache(pipe, cfg.Data.CacheTTL)

	// The forecast artifact is optional; without it every forecast uses the
	// last-known-value heuristic.
	var model forecast.Forecaster
	if artifact, err := forecast.LoadArtifact(cfg.Forecast.ArtifactPath); err != nil {
		logger.Warn().Err(err).Str("path", cfg.Forecast.ArtifactPath).Msg("Forecast artifact unavailable, forecasts use heuristic fallback")
	} else {
		model = artifact
		logger.Info().Str("path", cfg.Forecast.ArtifactPath).Msg("Forecast artifact loaded")
	}

	apiHandler := server.NewAPIHandler(cache, catalog, model, logger)
	liveHandler := server.NewLiveHandler(cache, cfg.Server.LivePushInterval, logger, cfg.Server.AllowedOrigins...)

	router := server.NewRouter(server.RouterConfig{
		API:            apiHandler,
		Live:           liveHandler,
		Version:        version,
		DashboardPath:  cfg.Server.DashboardPath,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown error")
	}

	logger.Info().Msg("Server stopped")
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
