package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/coursedex/internal/config"
	"github.com/kailas-cloud/coursedex/internal/db"
	dbPostgres "github.com/kailas-cloud/coursedex/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/coursedex/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/coursedex/internal/db/sqlite"
	logpkg "github.com/kailas-cloud/coursedex/internal/logger"
	"github.com/kailas-cloud/coursedex/internal/metrics"
	catalogrepo "github.com/kailas-cloud/coursedex/internal/repository/catalog"
	sectionrepo "github.com/kailas-cloud/coursedex/internal/repository/section"
	chiTransport "github.com/kailas-cloud/coursedex/internal/transport/chi"
	discoveryuc "github.com/kailas-cloud/coursedex/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/coursedex/internal/usecase/health"
	"github.com/kailas-cloud/coursedex/internal/version"
)

// catalogSource is what the server needs from a catalog index backend.
type catalogSource interface {
	discoveryuc.CatalogSource
	healthuc.CatalogChecker
}

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting coursedex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	ctx := context.Background()

	// Create structured store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		store, err = dbSQLite.NewStore(dbSQLite.Config{
			Path:     cfg.Database.Path,
			ReadOnly: true,
		})
	case config.DriverPostgres:
		store, err = dbPostgres.NewStore(ctx, dbPostgres.Config{
			DSN:      cfg.Database.DSN,
			MaxConns: cfg.Database.MaxConns,
		})
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Catalog index source
	var catalog catalogSource
	switch cfg.Catalog.Source {
	case config.CatalogFile:
		catalog = catalogrepo.NewFileSource(cfg.Catalog.Path)
	case config.CatalogRedis:
		redisStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Catalog.Redis.Addrs,
			Password: cfg.Catalog.Redis.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create catalog redis client", zap.Error(err))
		}
		defer redisStore.Close()
		catalog = catalogrepo.NewRedisSource(redisStore, cfg.Catalog.Redis.Key)
	default:
		logger.Fatal("Unknown catalog source", zap.String("source", cfg.Catalog.Source))
	}
	if err := catalog.Check(ctx); err != nil {
		// Structured queries still work; text search fails until the index appears.
		logger.Warn("Catalog index unavailable", zap.Error(err))
	}

	// Register discovery metrics explicitly (no init())
	metrics.RegisterDiscoveryMetrics()

	// Use cases
	finder := discoveryuc.NewInstrumented(
		discoveryuc.New(sectionrepo.New(store), catalog),
		logger,
	)
	healthSvc := healthuc.New(store, catalog)

	// Create chi server
	server := chiTransport.NewServer(finder, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	chiTransport.Handler(server, r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
