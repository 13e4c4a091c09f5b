package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  ModelCost
		found bool
	}{
		{"gpt-4o-mini", ModelCost{0.15, 0.6}, true},
		{"gpt-4o-mini-2024-07-18", ModelCost{0.15, 0.6}, true},
		{"gpt-4o-2024-11-20", ModelCost{2.5, 10}, true},
		{"claude-sonnet-4-20250514", ModelCost{3, 15}, true},
		{"claude-sonnet-4-5-20250929", ModelCost{3, 15}, true},
		{"claude-haiku-4-5-20251001", ModelCost{1, 5}, true},
		{"google/gemini-2.0-flash-001", ModelCost{0.1, 0.4}, true},
		{"gemini-2.0-flash-lite", ModelCost{0.075, 0.3}, true},
		// Family names only match on a dash boundary.
		{"gpt-5.1", ModelCost{}, false},
		{"gpt-4omni", ModelCost{}, false},
		{"mock", ModelCost{}, false},
		{"", ModelCost{}, false},
	}
	for _, tt := range tests {
		got, ok := LookupCost(tt.model)
		if ok != tt.found || got != tt.want {
			t.Errorf("LookupCost(%q) = %+v, %v; want %+v, %v", tt.model, got, ok, tt.want, tt.found)
		}
	}
}

func TestEstimateCost(t *testing.T) {
	usd, ok := EstimateCost("claude-haiku-4-5-20251001", 2_000, 500)
	if !ok {
		t.Fatal("expected a price for claude haiku")
	}
	// 2000 * $1/M + 500 * $5/M
	if math.Abs(usd-0.0045) > 1e-12 {
		t.Fatalf("cost = %f, want 0.0045", usd)
	}

	if _, ok := EstimateCost("mock", 10, 10); ok {
		t.Fatal("mock model should have no price")
	}
}

func TestDefaultModelsArePriced(t *testing.T) {
	cfg := DefaultConfig()
	for provider, model := range map[string]string{
		ProviderAnthropic:  resolveModel(ProviderAnthropic, cfg.Anthropic.Model),
		ProviderOpenAI:     resolveModel(ProviderOpenAI, cfg.OpenAI.Model),
		ProviderOpenRouter: cfg.OpenRouter.Model,
		ProviderGemini:     resolveModel(ProviderGemini, cfg.Gemini.Model),
	} {
		if _, ok := LookupCost(model); !ok {
			t.Errorf("%s default model %q has no price", provider, model)
		}
	}
	for provider, aliases := range modelAliases {
		for alias, id := range aliases {
			if _, ok := LookupCost(id); !ok {
				t.Errorf("%s alias %s -> %q has no price", provider, alias, id)
			}
		}
	}
}
