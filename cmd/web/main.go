package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"business-dashboard/internal/config"
	"business-dashboard/internal/handlers"
	"business-dashboard/internal/middleware"
	"business-dashboard/internal/observability"
	"business-dashboard/internal/server"
	"business-dashboard/internal/services"
	"business-dashboard/internal/ui/templates"
)

const (
	renderTimeout = 10 * time.Second
	seedTimeout   = 30 * time.Second
	cacheMaxAge   = "public, max-age=300"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", cacheMaxAge)
	if err := templates.Dashboard().Render(ctx, w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func newHandler(cfg *config.Config, dashboard *services.Dashboard, logger *slog.Logger) http.Handler {
	srv := server.NewServer(dashboard, logger, &server.TemplateHandlers{
		Dashboard: handleDashboard,
	})

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.ServerTiming(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(middleware.NewRateLimiter(cfg.Security), logger),
		middleware.CSRF(cfg.Security, logger),
	)

	return middlewareChain(srv)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", handlers.Version,
		"addr", cfg.Address(),
		"customers", cfg.Data.Customers,
		"orders", cfg.Data.Orders,
	)

	dashboard := services.NewDashboard(services.Options{
		Customers: cfg.Data.Customers,
		Orders:    cfg.Data.Orders,
		Seed:      cfg.Data.Seed,
	})

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	err = dashboard.Seed(ctx)
	cancel()
	if err != nil {
		logger.Error("failed to generate dashboard data", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, dashboard, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook("dashboard", func(ctx context.Context) error {
		logger.Info("discarding dashboard state", "stats", dashboard.Stats())
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
