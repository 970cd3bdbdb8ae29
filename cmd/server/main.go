package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	httpAdapter "github.com/iho/ledgerd/internal/adapter/http"
	"github.com/iho/ledgerd/internal/adapter/http/handler"
	"github.com/iho/ledgerd/internal/infrastructure/config"
	"github.com/iho/ledgerd/internal/infrastructure/logger"
	"github.com/iho/ledgerd/internal/infrastructure/metrics"
	"github.com/iho/ledgerd/internal/journal"
	"github.com/iho/ledgerd/internal/ledgercli"
	"github.com/iho/ledgerd/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Initialize metrics
	m := metrics.New(prometheus.DefaultRegisterer)

	// Open the journal; the constructor runs one engine dump to build
	// the account/payee/currency snapshots, so a broken ledger binary
	// or journal file fails fast here.
	engine := journal.InstrumentEngine(ledgercli.NewRunner(cfg.LedgerBin, cfg.JournalPath), m)
	jrnl, err := journal.New(ctx, journal.Config{
		Path:    cfg.JournalPath,
		Engine:  engine,
		Logger:  log,
		Metrics: m,
	})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.JournalPath).Msg("failed to open journal")
	}
	log.Info().Str("path", cfg.JournalPath).Str("bin", cfg.LedgerBin).Msg("journal opened")

	// Initialize use cases
	journalUC := usecase.NewJournalUseCase(jrnl, m, log)
	reportUC := usecase.NewReportUseCase(jrnl)

	// Initialize handlers
	journalHandler := handler.NewJournalHandler(journalUC, cfg.EntryCount)
	queryHandler := handler.NewQueryHandler(journalUC)
	reportHandler := handler.NewReportHandler(reportUC)
	healthHandler := handler.NewHealthHandler(cfg.JournalPath)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		JournalHandler: journalHandler,
		QueryHandler:   queryHandler,
		ReportHandler:  reportHandler,
		HealthHandler:  healthHandler,
		Logger:         log,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
