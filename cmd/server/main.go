package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akireev/deckwise/internal/analyze"
	"github.com/akireev/deckwise/internal/api"
	"github.com/akireev/deckwise/internal/cache"
	"github.com/akireev/deckwise/internal/chunker"
	"github.com/akireev/deckwise/internal/config"
	"github.com/akireev/deckwise/internal/llm"
	"github.com/akireev/deckwise/internal/pipeline"
	"github.com/akireev/deckwise/internal/reportstore"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the LLM gateway. A missing provider key leaves the
	// gateway unavailable and every job degrades to fallback reports.
	provider, err := llm.NewProvider(cfg.LLMProvider, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL)
	if err != nil {
		log.Error("invalid llm configuration", "error", err)
		os.Exit(1)
	}
	if provider == nil {
		log.Warn("no llm provider configured, serving fallback reports only")
	}
	gateway := llm.NewGateway(provider, llm.Options{
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
		RatePerSec:  cfg.LLMRatePerSec,
		Burst:       cfg.LLMBurst,
	})

	var store *reportstore.Client
	if cfg.ReportstoreURL != "" {
		store = reportstore.NewClient(cfg.ReportstoreURL, cfg.ReportstoreAPIKey)
	}

	analyzer := analyze.NewAnalyzer(gateway, log,
		chunker.Config{SlidesPerBlock: cfg.SlidesPerBlock},
		analyze.Caps{
			Strengths:       cfg.StrengthsCap,
			Weaknesses:      cfg.WeaknessesCap,
			Recommendations: cfg.RecommendationsCap,
		})
	reportCache := cache.NewReportCache(cfg.ReportTTL)

	orch := pipeline.NewOrchestrator(cfg, analyzer, reportCache, store, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, gateway, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if store != nil {
			store.Close()
		}
	}()

	log.Info("starting deckwise", "port", cfg.Port, "provider", gateway.ProviderName())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
