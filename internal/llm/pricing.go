package llm

import "strings"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost prices one call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// modelCosts lists model families reachable from the configured defaults
// and aliases. Prices as published by each vendor, February 2026.
var modelCosts = map[string]ModelCost{
	"claude-3-5-haiku":  {0.8, 4},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4":     {15, 75},
	"claude-opus-4-5":   {5, 25},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},

	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
}

// LookupCost finds pricing for a model ID. Dated snapshots such as
// "claude-sonnet-4-20250514" resolve to the longest listed family, and an
// OpenRouter vendor prefix ("google/") is ignored.
func LookupCost(modelID string) (ModelCost, bool) {
	if i := strings.LastIndexByte(modelID, '/'); i >= 0 {
		modelID = modelID[i+1:]
	}
	if c, ok := modelCosts[modelID]; ok {
		return c, true
	}

	best := ""
	for family := range modelCosts {
		rest, ok := strings.CutPrefix(modelID, family)
		if !ok || !strings.HasPrefix(rest, "-") {
			continue
		}
		if len(family) > len(best) {
			best = family
		}
	}
	if best == "" {
		return ModelCost{}, false
	}
	return modelCosts[best], true
}

// EstimateCost prices a call to model, reporting false for unknown models.
func EstimateCost(model string, inputTokens, outputTokens int) (float64, bool) {
	c, ok := LookupCost(model)
	if !ok {
		return 0, false
	}
	return c.Cost(inputTokens, outputTokens), true
}
