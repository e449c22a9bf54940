package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tablefinder/internal/config"
	"github.com/kailas-cloud/tablefinder/internal/db/driver"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/query"
	logpkg "github.com/kailas-cloud/tablefinder/internal/logger"
	"github.com/kailas-cloud/tablefinder/internal/metrics"
	restaurantrepo "github.com/kailas-cloud/tablefinder/internal/repository/restaurant"
	chiTransport "github.com/kailas-cloud/tablefinder/internal/transport/chi"
	healthuc "github.com/kailas-cloud/tablefinder/internal/usecase/health"
	restaurantuc "github.com/kailas-cloud/tablefinder/internal/usecase/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting tablefinder API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	store, err := driver.Open(cfg.Database, cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	if n, err := store.CountAll(ctx); err != nil {
		logger.Warn("Could not count restaurants", zap.Error(err))
	} else if n == 0 {
		logger.Warn("Dataset is empty, run tablefinder-seed load first")
	} else {
		logger.Info("Dataset loaded", zap.Int("restaurants", n))
	}

	metrics.RegisterSearchMetrics()

	repo := restaurantrepo.New(store)
	restaurantSvc := restaurantuc.New(repo, restaurantuc.Config{
		Timeout: cfg.Search.Timeout(),
		Search: query.Limits{
			DefaultLimit: cfg.Search.DefaultLimit,
			MaxLimit:     cfg.Search.MaxLimit,
		},
		Listing: query.Limits{
			DefaultLimit: cfg.Search.ListDefaultLimit,
			MaxLimit:     cfg.Search.MaxLimit,
		},
		IncludeZeroMatches: cfg.Search.ZeroMatches(),
	})
	healthSvc := healthuc.New(store, store)

	server := chiTransport.NewServer(restaurantSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(corsMiddleware(cfg.HTTP.CORSOrigins))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// corsMiddleware allows the browser frontend to call the API. No origins means allow all.
func corsMiddleware(origins []string) func(next http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: len(origins) != 1 || origins[0] != "*",
	}).Handler
}
