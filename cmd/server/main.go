package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docform/internal/api"
	"github.com/dgallion1/docform/internal/config"
	"github.com/dgallion1/docform/internal/memo"
	"github.com/dgallion1/docform/internal/metrics"
	"github.com/dgallion1/docform/internal/pathstore"
	"github.com/dgallion1/docform/internal/pipeline"
	"github.com/dgallion1/docform/internal/structure"
)

func main() {
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		log.Error("invalid rules file", "path", cfg.RulesFile, "error", err)
		os.Exit(1)
	}
	engine, err := structure.New(rules)
	if err != nil {
		log.Error("invalid rules", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Structuring is memoized on the raw text and timed on every miss.
	latency := metrics.NewLatency(5 * time.Minute)
	cache := memo.New(engine, cfg.CacheEntries, latency)

	// Initialize clients.
	ps := pathstore.NewClient(cfg.PathstoreURL, cfg.PathstoreAPIKey)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, cache, ps, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(cache, latency, orch, ps, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", "error", err)
		}

		orch.Stop()
		ps.Close()
	}()

	log.Info("starting docform", "port", cfg.Port, "cache_entries", cfg.CacheEntries, "workers", cfg.WorkerCount)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
}
