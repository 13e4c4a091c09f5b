package llm

import (
	"context"
	"fmt"

	"github.com/autocare/autocare/internal/store"
)

// NewProvider builds the backend named by cfg.Provider and wraps it so each
// attempt is logged to eventRepo and transient failures are retried:
// caller → retry → logging → backend. A nil eventRepo skips event logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	base, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if eventRepo != nil {
		p = WithLogging(p, cfg.Provider, eventRepo)
	}
	return WithRetry(p, cfg.Retry), nil
}

func newBackend(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		routed := cfg.OpenRouter
		if routed.BaseURL == "" {
			routed.BaseURL = OpenRouterBaseURL
		}
		return NewOpenAIProvider(routed)
	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		return NewOfflineProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}

// NewProviderFromEnv resolves configuration from the environment (see
// ResolveConfig) and builds the provider.
func NewProviderFromEnv(ctx context.Context, provider string, eventRepo store.EventRepo) (Provider, Config, error) {
	cfg, err := ResolveConfig(provider)
	if err != nil {
		return nil, cfg, err
	}
	p, err := NewProvider(ctx, cfg, eventRepo)
	return p, cfg, err
}
