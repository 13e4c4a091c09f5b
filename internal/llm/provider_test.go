package llm

import (
	"context"
	"testing"
)

func TestContextLabels(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("default purpose = %q, want unknown", p)
	}
	if id := FeedbackIDFrom(ctx); id != "" {
		t.Fatalf("default feedback id = %q, want empty", id)
	}

	ctx = WithFeedbackID(WithPurpose(ctx, "second-opinion"), "DIAG-42")
	if p := PurposeFrom(ctx); p != "second-opinion" {
		t.Fatalf("purpose = %q", p)
	}
	if id := FeedbackIDFrom(ctx); id != "DIAG-42" {
		t.Fatalf("feedback id = %q", id)
	}
	if p := PurposeFrom(WithPurpose(ctx, "")); p != "unknown" {
		t.Fatalf("empty purpose = %q, want unknown", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openrouter without key",
			cfg:     Config{Provider: "openrouter"},
			wantErr: true,
		},
		{
			name:    "openrouter with key",
			cfg:     Config{Provider: "openrouter", OpenRouter: OpenAIConfig{APIKey: "sk-or"}},
			wantErr: false,
		},
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"AUTOCARE_LLM_PROVIDER", "AUTOCARE_ANTHROPIC_API_KEY", "AUTOCARE_OPENAI_API_KEY",
		"AUTOCARE_OPENROUTER_API_KEY", "AUTOCARE_GEMINI_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("AUTOCARE_LLM_PROVIDER", "openai")
	t.Setenv("AUTOCARE_OPENAI_API_KEY", "sk-env")
	t.Setenv("AUTOCARE_OPENAI_MODEL", "gpt-mini")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" || cfg.OpenAI.Model != "gpt-mini" {
		t.Fatalf("unexpected config: %+v", cfg.OpenAI)
	}
	if cfg.OpenRouter.BaseURL != OpenRouterBaseURL {
		t.Fatalf("expected openrouter base url default, got %q", cfg.OpenRouter.BaseURL)
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("explicit settings win", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("AUTOCARE_ANTHROPIC_API_KEY", "sk-ant")
		t.Setenv("GEMINI_API_KEY", "g-key")
		cfg, err := ResolveConfig("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Provider != "anthropic" {
			t.Fatalf("expected anthropic, got %q", cfg.Provider)
		}
	})

	t.Run("falls back to discovery", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("GEMINI_API_KEY", "g-key")
		cfg, err := ResolveConfig("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
			t.Fatalf("expected discovered gemini config, got %+v", cfg)
		}
	})

	t.Run("explicit provider without key fails", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("GEMINI_API_KEY", "g-key")
		if _, err := ResolveConfig("openai"); err == nil {
			t.Fatal("expected error for openai without key")
		}
	})

	t.Run("nothing configured", func(t *testing.T) {
		clearLLMEnv(t)
		if _, err := ResolveConfig(""); err == nil {
			t.Fatal("expected error when no key is available")
		}
	})
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock provider, got %q", p.ModelID())
	}
	resp, err := p.Generate(context.Background(), Request{Schema: &Schema{
		Name:       "factory-mock-test",
		Definition: map[string]any{"type": "object", "properties": map[string]any{}, "required": []any{}},
	}})
	if err != nil {
		t.Fatalf("offline generate: %v", err)
	}
	if string(resp.Content) != `{}` {
		t.Fatalf("content = %s", resp.Content)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "skynet"}, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewProvider_OpenRouterUsesOpenAIClient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openrouter"
	cfg.OpenRouter.APIKey = "sk-or"
	p, err := NewProvider(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "google/gemini-2.0-flash-001" {
		t.Fatalf("unexpected model %q", p.ModelID())
	}
}
