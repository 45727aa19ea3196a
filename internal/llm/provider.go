package llm

import "context"

// GenerateRequest is the backend contract: a prompt plus the token budget
// and sampling temperature passed through from configuration.
type GenerateRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Provider is one text-generation backend. Implementations return the raw
// response text; callers treat empty text and errors identically as "no
// usable output".
type Provider interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
