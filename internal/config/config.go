package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	DeckwiseAPIKey string

	// LLM backend
	LLMProvider    string
	LLMAPIKey      string
	LLMModel       string
	LLMBaseURL     string
	LLMMaxTokens   int
	LLMTemperature float64
	LLMRatePerSec  float64
	LLMBurst       int

	// Analysis engine
	SlidesPerBlock     int
	StrengthsCap       int
	WeaknessesCap      int
	RecommendationsCap int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job and cache lifetimes
	JobTTL    time.Duration
	ReportTTL time.Duration

	// Report store connection (optional)
	ReportstoreURL    string
	ReportstoreAPIKey string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DeckwiseAPIKey: os.Getenv("DECKWISE_API_KEY"),

		LLMProvider:    envOr("LLM_PROVIDER", "openai"),
		LLMAPIKey:      os.Getenv("LLM_API_KEY"),
		LLMModel:       envOr("LLM_MODEL", "gpt-4o-mini"),
		LLMBaseURL:     os.Getenv("LLM_BASE_URL"),
		LLMMaxTokens:   envInt("LLM_MAX_TOKENS", 2000),
		LLMTemperature: envFloat("LLM_TEMPERATURE", 0.0),
		LLMRatePerSec:  envFloat("LLM_RATE_PER_SEC", 2.0),
		LLMBurst:       envInt("LLM_BURST", 2),

		SlidesPerBlock:     envInt("SLIDES_PER_BLOCK", 5),
		StrengthsCap:       envInt("STRENGTHS_CAP", 5),
		WeaknessesCap:      envInt("WEAKNESSES_CAP", 20),
		RecommendationsCap: envInt("RECOMMENDATIONS_CAP", 20),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL:    envDuration("JOB_TTL", 1*time.Hour),
		ReportTTL: envDuration("REPORT_TTL", 24*time.Hour),

		ReportstoreURL:    os.Getenv("REPORTSTORE_URL"),
		ReportstoreAPIKey: os.Getenv("REPORTSTORE_API_KEY"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.SlidesPerBlock <= 0 {
		cfg.SlidesPerBlock = 5
	}
	if cfg.StrengthsCap <= 0 {
		cfg.StrengthsCap = 5
	}
	if cfg.WeaknessesCap <= 0 {
		cfg.WeaknessesCap = 20
	}
	if cfg.RecommendationsCap <= 0 {
		cfg.RecommendationsCap = 20
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.LLMMaxTokens <= 0 {
		cfg.LLMMaxTokens = 2000
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.ReportTTL <= 0 {
		cfg.ReportTTL = 24 * time.Hour
	}

	return cfg
}

// Validate checks the configuration. A missing LLM key is allowed: the
// service then runs in degraded mode and every report is the fallback.
func (c Config) Validate() error {
	if c.LLMTemperature < 0 || c.LLMTemperature >= 1 {
		return fmt.Errorf("LLM_TEMPERATURE must be in [0,1), got %v", c.LLMTemperature)
	}
	if c.ReportstoreURL != "" && c.ReportstoreAPIKey == "" {
		return fmt.Errorf("REPORTSTORE_API_KEY is required when REPORTSTORE_URL is set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
