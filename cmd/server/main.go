package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rtboard/backend/internal/api"
	"github.com/rtboard/backend/internal/auth"
	"github.com/rtboard/backend/internal/cache"
	"github.com/rtboard/backend/internal/config"
	"github.com/rtboard/backend/internal/fetch"
	"github.com/rtboard/backend/internal/metrics"
	"github.com/rtboard/backend/internal/report"
	"github.com/rtboard/backend/internal/rt"
	"github.com/rtboard/backend/pkg/middleware"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	reports, err := config.LoadReports(cfg.ReportsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load reports configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Str("base_url", cfg.BaseURL).
		Str("user", cfg.RTUsername).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("starting reporting dashboard backend")

	// Upstream client and session-scoped state
	client, err := rt.NewClient(cfg.BaseURL, cfg.RTUsername, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create upstream client")
	}

	tableCache := cache.NewTableCache(cfg.CacheTTL, nil)
	fetcher := fetch.NewFetcher(client, cfg.RTUsername, tableCache, log.Logger)
	reportService := report.NewService(fetcher, reports, client.BaseURL(), cfg.StartYear, nil, log.Logger)

	sessions := auth.NewSessionStore(cfg.SessionTTL, nil)
	issuer := auth.NewTokenIssuer(cfg.SessionSecret)

	authHandler := api.NewAuthHandler(client, sessions, issuer, tableCache, log.Logger)
	reportsHandler := api.NewReportsHandler(reportService, log.Logger)

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Public routes
	r.Get("/health", healthHandler)
	r.Get("/metrics", metrics.Get().Handler)
	r.Post("/auth/login", authHandler.HandleLogin)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(issuer, sessions))

		r.Post("/auth/logout", authHandler.HandleLogout)

		r.Route("/api/reports", func(r chi.Router) {
			r.Get("/help-overview", reportsHandler.HandleHelpOverview)
			r.Get("/help-overview/markdown", reportsHandler.HandleHelpOverviewMarkdown)
			r.Get("/customers", reportsHandler.HandleCustomers)
			r.Get("/customers/markdown", reportsHandler.HandleCustomersMarkdown)
			r.Get("/domains", reportsHandler.HandleDomains)
			r.Get("/response-times", reportsHandler.HandleResponseTimes)
			r.Get("/requestors", reportsHandler.HandleRequestors)
			r.Get("/idm-tickets", reportsHandler.HandleIDMTickets)
			r.Get("/idm-tickets/markdown", reportsHandler.HandleIDMTicketsMarkdown)
		})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"rtboard-backend"}`)
}
