// Package main is the entrypoint for the Shopify→GA4 forwarder.
package main

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/papai4576-cyber/shopify-ga4-mp/internal/config"
	"github.com/papai4576-cyber/shopify-ga4-mp/internal/ga4"
	"github.com/papai4576-cyber/shopify-ga4-mp/internal/handler"
	"github.com/papai4576-cyber/shopify-ga4-mp/internal/metrics"
	"github.com/papai4576-cyber/shopify-ga4-mp/internal/middleware"
	"github.com/papai4576-cyber/shopify-ga4-mp/internal/server"
	"github.com/papai4576-cyber/shopify-ga4-mp/internal/shopify"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	if cfg.ShopifyWebhookSecret == "" {
		logger.Warn("SHOPIFY_WEBHOOK_SECRET is empty, webhook signature verification is disabled")
	}

	recorder := metrics.NewInMemory()

	// Outbound GA4 client; the endpoint variant is fixed here for the
	// process lifetime.
	client := ga4.NewClient(ga4.ClientConfig{
		MeasurementID: cfg.GA4MeasurementID,
		APISecret:     cfg.GA4APISecret,
		Debug:         cfg.GA4DebugMode(),
		Logger:        logger,
		Metrics:       recorder,
	})

	verifier := shopify.NewVerifier(cfg.ShopifyWebhookSecret)

	// Initialize handlers
	h := handler.New()
	webhookHandler := handler.NewWebhookHandler(verifier, client, cfg.MaxRequestBodySize, logger, recorder)
	metricsHandler := handler.NewMetricsHandler(recorder)

	r := setupRouter(h, webhookHandler, metricsHandler, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"ga4_debug", cfg.GA4DebugMode(),
		"verification_enabled", verifier.Enabled(),
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
// The webhook route must see the raw body: no middleware here reads or
// rewrites request bodies.
func setupRouter(
	h *handler.Handler,
	webhookHandler *handler.WebhookHandler,
	metricsHandler *handler.MetricsHandler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/healthz", h.Healthz)
	r.Get("/metrics", metricsHandler.Get)

	r.Post("/webhook/orders", webhookHandler.HandleOrder)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
