package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/ledquote/internal/api"
	"github.com/andresuchdata/ledquote/internal/cache"
	"github.com/andresuchdata/ledquote/internal/config"
	"github.com/andresuchdata/ledquote/internal/repository/source"
	"github.com/andresuchdata/ledquote/internal/service"
	"github.com/andresuchdata/ledquote/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catalog source
	repo, closeRepo, err := source.Open(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("source", cfg.Catalog.Source).Msg("Failed to open catalog source")
	}
	defer closeRepo()

	quoteCache, err := cache.NewQuoteCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Quote cache unavailable, continuing without it")
		quoteCache = cache.NewNoopQuoteCache()
	}

	// Initialize services
	services := &api.Services{
		QuoteService: service.NewQuoteService(repo, quoteCache, cfg.Quote),
	}

	// Initialize HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      api.NewRouter(services, cfg.Server.AllowedOrigins),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().
			Str("port", cfg.Server.Port).
			Str("catalog_source", cfg.Catalog.Source).
			Bool("cache", cfg.Cache.Enabled).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-ctx.Done()
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
		os.Exit(1)
	}

	logger.Log.Info().Msg("Server exiting")
}
