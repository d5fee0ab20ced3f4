package pool

import (
	"encoding/json"
	"fmt"
	"sync"

	"adaptive-quiz-service/internal/domain"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://question-pool.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func tierSchema(count int) map[string]any {
	return map[string]any{
		"type":     "array",
		"minItems": count,
		"maxItems": count,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":       map[string]any{"type": []any{"string", "number", "null"}},
				"question": map[string]any{"type": "string", "minLength": 1},
				"options": map[string]any{
					"type":     "array",
					"minItems": domain.OptionCount,
					"maxItems": domain.OptionCount,
					"items":    map[string]any{"type": "string"},
				},
				"correctAnswer": map[string]any{
					"type":    "integer",
					"minimum": 0,
					"maximum": domain.OptionCount - 1,
				},
				"explanation": map[string]any{"type": "string"},
				"difficulty":  map[string]any{"type": "string"},
			},
			"required": []any{"question", "options", "correctAnswer"},
		},
	}
}

// poolSchema describes the completion output accepted as a question pool.
func poolSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"easy":   tierSchema(domain.EasyCount),
			"medium": tierSchema(domain.MediumCount),
			"hard":   tierSchema(domain.HardCount),
		},
		"required": []any{"easy", "medium", "hard"},
	}
}

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler expects a decoded JSON value, not Go literals.
		raw, err := json.Marshal(poolSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
