package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/evenbetter/backend/internal/auth"
	"github.com/evenbetter/backend/internal/config"
	"github.com/evenbetter/backend/internal/middleware"
	"github.com/evenbetter/backend/internal/preferences"
	"github.com/evenbetter/backend/internal/rpc"
	"github.com/evenbetter/backend/internal/service"
	"github.com/evenbetter/backend/internal/storage"
	"github.com/evenbetter/backend/internal/storage/redis"
	"github.com/evenbetter/backend/internal/storage/sqlite"
	"github.com/evenbetter/backend/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Logging first so config problems are readable
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.Log.Level))

	if cfg.UsesDevSecret() {
		slog.Warn("Using the built-in token secret; set EVENBETTER_AUTH_SECRET in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	prefStore, closePrefs, err := newPreferenceStore(ctx, cfg, store)
	if err != nil {
		return err
	}
	defer closePrefs()

	var (
		metrics *middleware.Metrics
		reg     *prometheus.Registry
	)
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = middleware.NewMetrics(reg)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	prefs := preferences.NewService(prefStore)

	// Metrics see every call, auth runs before logging so logs carry the session
	interceptors := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.RequireSession(jwtManager, rpc.PublicProcedures...),
		middleware.LoggingInterceptor(),
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	// Register Connect services
	sessionSvc := service.NewSessionService(store, prefs, jwtManager, metrics)
	sessionPath, sessionHandler := rpc.NewSessionServiceHandler(sessionSvc, interceptors)
	r.Handle(sessionPath+"*", sessionHandler)

	prefPath, prefHandler := rpc.NewPreferenceServiceHandler(
		service.NewPreferenceService(sessionSvc), interceptors)
	r.Handle(prefPath+"*", prefHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newPreferenceStore picks the configured preference backend.
func newPreferenceStore(ctx context.Context, cfg *config.Config, fallback storage.PreferenceStore) (storage.PreferenceStore, func(), error) {
	if cfg.Preferences.Backend != config.BackendRedis {
		return fallback, func() {}, nil
	}

	store, err := redis.New(ctx, redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Preferences stored in Redis", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return store, func() { store.Close() }, nil
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
