package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubProvider struct {
	responses []string
	errs      []error
	calls     int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	i := p.calls
	p.calls++
	if i < len(p.errs) && p.errs[i] != nil {
		return "", p.errs[i]
	}
	if i < len(p.responses) {
		return p.responses[i], nil
	}
	return "", errors.New("unexpected call")
}

func TestGateway_NilProviderUnavailable(t *testing.T) {
	g := NewGateway(nil, Options{})
	if g.Available() {
		t.Error("expected gateway without provider to be unavailable")
	}
	if g.ProviderName() != "none" {
		t.Errorf("expected provider name %q, got %q", "none", g.ProviderName())
	}
	_, err := g.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestGateway_GenerateSuccess(t *testing.T) {
	p := &stubProvider{responses: []string{"  some answer  "}}
	g := NewGateway(p, Options{RatePerSec: 1000, Burst: 10})

	got, err := g.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if got != "  some answer  " {
		t.Errorf("expected raw response passthrough, got %q", got)
	}
	if g.Stats().Snapshot().Count != 1 {
		t.Error("expected one recorded latency sample")
	}
}

func TestGateway_EmptyResponse(t *testing.T) {
	p := &stubProvider{responses: []string{"   \n  "}}
	g := NewGateway(p, Options{RatePerSec: 1000, Burst: 10})

	_, err := g.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGateway_RetriesTransientFailures(t *testing.T) {
	p := &stubProvider{
		responses: []string{"", "", "recovered"},
		errs: []error{
			&RetryableError{StatusCode: 429, Message: "slow down"},
			&RetryableError{StatusCode: 503, Message: "overloaded"},
			nil,
		},
	}
	g := NewGateway(p, Options{RatePerSec: 1000, Burst: 10, MaxRetries: 3, RetryDelay: time.Millisecond})

	got, err := g.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("expected recovery after retries, got %v", err)
	}
	if got != "recovered" {
		t.Errorf("expected %q, got %q", "recovered", got)
	}
	if p.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", p.calls)
	}
}

func TestGateway_NonRetryableFailsFast(t *testing.T) {
	p := &stubProvider{errs: []error{errors.New("invalid api key")}}
	g := NewGateway(p, Options{RatePerSec: 1000, Burst: 10, MaxRetries: 3})

	_, err := g.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable wrap, got %v", err)
	}
	if p.calls != 1 {
		t.Errorf("expected a single attempt, got %d", p.calls)
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(&RetryableError{StatusCode: 500}) {
		t.Error("expected RetryableError to be retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("expected plain error to not be retryable")
	}
	if IsRetryable(nil) {
		t.Error("expected nil to not be retryable")
	}
}
