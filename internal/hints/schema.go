package hints

import "github.com/NoamFav/bitvoyager/internal/llm"

// HintSchema defines the JSON schema for generated hints.
var HintSchema = &llm.Schema{
	Name:        "practice-hint",
	Description: "A short hint that points the learner at the next step without giving the full answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "One or two sentences of guidance",
			},
			"command": map[string]any{
				"type":        "string",
				"description": "The program name to try next, without arguments",
			},
		},
		"required":             []any{"hint"},
		"additionalProperties": false,
	},
}
