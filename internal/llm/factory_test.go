package llm

import "testing"

func TestNewProvider_MissingKeyMeansNil(t *testing.T) {
	p, err := NewProvider("openai", "", "gpt-4o-mini", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Error("expected nil provider without an API key")
	}
}

func TestNewProvider_OpenAI(t *testing.T) {
	p, err := NewProvider("openai", "sk-test", "gpt-4o-mini", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || p.Name() != "openai" {
		t.Errorf("expected openai provider, got %v", p)
	}
}

func TestNewProvider_AnthropicAliases(t *testing.T) {
	for _, name := range []string{"anthropic", "claude", "Anthropic"} {
		p, err := NewProvider(name, "key", "claude-sonnet-4-20250514", "")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if p == nil || p.Name() != "anthropic" {
			t.Errorf("%s: expected anthropic provider, got %v", name, p)
		}
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider("mystery", "key", "m", ""); err == nil {
		t.Error("expected error for unknown provider")
	}
}
