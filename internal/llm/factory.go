package llm

import (
	"fmt"
	"strings"
)

// NewProvider selects a backend by name. An empty name or missing API key
// returns a nil provider: the service then runs in degraded mode and the
// analysis engine substitutes fallback reports.
func NewProvider(name, apiKey, model, baseURL string) (Provider, error) {
	if apiKey == "" {
		return nil, nil
	}
	switch strings.ToLower(name) {
	case "openai":
		return NewOpenAIProvider(apiKey, model, baseURL)
	case "anthropic", "claude":
		return NewAnthropicProvider(apiKey, model)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s (supported: openai, anthropic)", name)
	}
}
