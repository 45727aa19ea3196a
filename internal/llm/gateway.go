package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"
)

// ErrUnavailable reports that no backend is configured or the call could
// not be completed. Callers map it to the fallback report.
var ErrUnavailable = errors.New("llm backend unavailable")

// ErrEmptyResponse reports that the backend answered with no usable text.
var ErrEmptyResponse = errors.New("llm backend returned empty output")

// RetryableError indicates a transient backend failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Options configure a Gateway.
type Options struct {
	MaxTokens   int
	Temperature float64
	RatePerSec  float64
	Burst       int
	MaxRetries  uint
	RetryDelay  time.Duration
}

// Gateway wraps a Provider with rate limiting, retries on transient
// failures and latency accounting. It is safe for concurrent use and
// read-only after construction; a nil provider yields ErrUnavailable on
// every call.
type Gateway struct {
	provider Provider
	limiter  *rate.Limiter
	stats    *Stats
	opts     Options
}

func NewGateway(provider Provider, opts Options) *Gateway {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 2000
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = 2
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}
	return &Gateway{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(opts.RatePerSec), opts.Burst),
		stats:    NewStats(time.Hour),
		opts:     opts,
	}
}

// Available reports whether a backend is configured.
func (g *Gateway) Available() bool {
	return g != nil && g.provider != nil
}

// ProviderName returns the configured backend's name, or "none".
func (g *Gateway) ProviderName() string {
	if !g.Available() {
		return "none"
	}
	return g.provider.Name()
}

// Stats returns the rolling latency statistics collector.
func (g *Gateway) Stats() *Stats {
	return g.stats
}

// Generate submits a prompt and returns the raw response text. Transient
// failures are retried with backoff; anything the backend cannot answer
// degrades to ErrUnavailable or ErrEmptyResponse, never to a panic.
func (g *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	if !g.Available() {
		return "", ErrUnavailable
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req := GenerateRequest{
		Prompt:      prompt,
		MaxTokens:   g.opts.MaxTokens,
		Temperature: g.opts.Temperature,
	}

	start := time.Now()
	var text string
	err := retry.Do(
		func() error {
			var genErr error
			text, genErr = g.provider.Generate(ctx, req)
			return genErr
		},
		retry.Context(ctx),
		retry.Attempts(g.opts.MaxRetries),
		retry.RetryIf(IsRetryable),
		retry.DelayType(retry.BackOffDelay),
		retry.Delay(g.opts.RetryDelay),
		retry.LastErrorOnly(true),
	)
	g.stats.Record(time.Since(start).Milliseconds())

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
