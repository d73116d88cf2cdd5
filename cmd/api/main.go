// Package main is the entrypoint for the contact relay HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/contactrelay/contactrelay/internal/app"
	"github.com/contactrelay/contactrelay/internal/config"
	"github.com/contactrelay/contactrelay/internal/handler"
	"github.com/contactrelay/contactrelay/internal/metrics"
	"github.com/contactrelay/contactrelay/internal/middleware"
	"github.com/contactrelay/contactrelay/internal/server"
	"github.com/contactrelay/contactrelay/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotenv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := app.NewLogger(cfg, nil)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = closeLog() }()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    app.ServiceName,
		ServiceVersion: app.Version,
		Endpoint:       cfg.OTelEndpoint,
		Enabled:        cfg.OTelEnabled,
		Insecure:       !cfg.IsProduction(),
	}, logger)
	if err != nil {
		logger.Error("failed to init tracing", zap.Error(err))
		return err
	}

	var recorder metrics.Recorder = metrics.NewNoop()
	var prom *metrics.PrometheusRecorder
	if cfg.MetricsEnabled {
		prom = metrics.NewPrometheus()
		recorder = prom
	}

	a, err := app.Bootstrap(ctx, cfg, recorder, logger)
	if err != nil {
		logger.Error("failed to build application", zap.Error(err))
		return err
	}

	h := handler.New(app.ServiceName, app.Version)
	healthHandler := handler.NewHealthHandler(a.Checks...)

	r := setupRouter(h, healthHandler, a.Contact, prom, cfg, logger)

	srv := server.New(r, cfg.AppPort, cfg.ReadTimeout, cfg.WriteTimeout, cfg.ShutdownTimeout, logger)
	srv.OnShutdown("tracing", shutdownTracing)

	logger.Info("starting server",
		zap.Int("port", cfg.AppPort),
		zap.String("quote_provider", cfg.QuoteProvider),
		zap.String("ses_region", cfg.SESRegion),
		zap.String("version", app.Version),
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		return err
	}
	return nil
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	contact *handler.ContactHandler,
	prom *metrics.PrometheusRecorder,
	cfg *config.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))

	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	if prom != nil {
		r.Method(http.MethodGet, "/metrics", prom.Handler())
	}

	r.Get("/", h.Index)

	// Form submissions. Both paths accept the same body.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
		r.Method(http.MethodPost, "/", contact)
		r.Method(http.MethodPost, "/contact", contact)
		r.Options("/", func(w http.ResponseWriter, r *http.Request) {})
		r.Options("/contact", func(w http.ResponseWriter, r *http.Request) {})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
