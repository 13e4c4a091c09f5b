package diagnosis

import "github.com/autocare/autocare/internal/llm"

// OpinionSchema is the structured output the LLM must return for a second
// opinion on an unmatched description.
var OpinionSchema = &llm.Schema{
	Name:        "symptom-opinion",
	Description: "The catalog symptom that best explains a vehicle problem description, if any",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"symptom": map[string]any{
				"type":        []any{"string", "null"},
				"description": "The <category>/<key> id of the matching symptom from the candidate list, or null if none fits",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "Confidence score (0.0-1.0) that the symptom explains the description",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "One sentence explaining the choice, or why nothing fits",
			},
		},
		"required":             []any{"symptom", "confidence", "reasoning"},
		"additionalProperties": false,
	},
}
