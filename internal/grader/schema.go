package grader

import "github.com/gradeline/gradeline/internal/llm"

// ResultSchema defines the JSON schema the oracle's grading response
// must conform to. It mirrors the Result wire format field for field.
var ResultSchema = &llm.Schema{
	Name:        "grading-result",
	Description: "Comprehensive grading result for a student programming assignment",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"syntax_check": map[string]any{
				"type":        "array",
				"description": "Syntax errors found, with line numbers",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"line":  map[string]any{"type": "integer"},
						"error": map[string]any{"type": "string"},
					},
					"required":             []any{"line", "error"},
					"additionalProperties": false,
				},
			},
			"compilation_test": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"compiles": map[string]any{"type": "boolean"},
					"errors": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
				"required":             []any{"compiles", "errors"},
				"additionalProperties": false,
			},
			"logical_errors": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"runtime_simulation": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status": map[string]any{
						"type": "string",
						"enum": []any{"success", "warning", "error"},
					},
					"summary": map[string]any{"type": "string"},
					"details": map[string]any{"type": "string"},
				},
				"required":             []any{"status", "summary", "details"},
				"additionalProperties": false,
			},
			"requirements_assessment": map[string]any{
				"type":        "array",
				"description": "Every requirement from the guidelines, met or not",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"requirement": map[string]any{"type": "string"},
						"met":         map[string]any{"type": "boolean"},
						"explanation": map[string]any{"type": "string"},
					},
					"required":             []any{"requirement", "met", "explanation"},
					"additionalProperties": false,
				},
			},
			"code_quality": map[string]any{
				"type":        "string",
				"description": "Assessment of readability, organization, and style",
			},
			"point_deductions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"reason": map[string]any{"type": "string"},
						"points": map[string]any{"type": "number"},
					},
					"required":             []any{"reason", "points"},
					"additionalProperties": false,
				},
			},
			"extra_credit": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"awarded": map[string]any{"type": "boolean"},
					"points":  map[string]any{"type": "number"},
					"reason":  map[string]any{"type": "string"},
				},
				"required":             []any{"awarded", "points", "reason"},
				"additionalProperties": false,
			},
			"final_score": map[string]any{
				"type":        "number",
				"description": "Final score after deductions and extra credit",
			},
			"overall_assessment": map[string]any{"type": "string"},
			"improvement_suggestions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"comment_consideration": map[string]any{
				"type":        "string",
				"description": "How the student's comment factored into grading",
			},
		},
		"required": []any{
			"syntax_check", "compilation_test", "logical_errors",
			"runtime_simulation", "requirements_assessment", "code_quality",
			"point_deductions", "extra_credit", "final_score",
			"overall_assessment", "improvement_suggestions", "comment_consideration",
		},
		"additionalProperties": false,
	},
}
