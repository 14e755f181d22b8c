package dpp

import (
	"fmt"

	"github.com/blues/jsonata-go"

	"github.com/twinsight/aasview/internal/app"
)

// Query evaluates a JSONata expression against a generated passport.
// Custom sections and extraction pipelines are written as JSONata rather
// than code, so the expression language carries the whole selection
// surface (paths, filters, aggregation).
func Query(passport *CompleteDPP, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("query expression is empty")
	}

	expr, err := jsonata.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("compile jsonata expression: %w", err)
	}

	// jsonata-go evaluates against map[string]any / []any shapes, so the
	// typed passport is normalized first.
	input, err := app.NormalizeJSON(passport)
	if err != nil {
		return nil, fmt.Errorf("normalize passport: %w", err)
	}

	result, err := expr.Eval(input)
	if err != nil {
		return nil, fmt.Errorf("evaluate jsonata expression: %w", err)
	}
	return result, nil
}
