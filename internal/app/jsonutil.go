package app

import "encoding/json"

// NormalizeJSON reshapes a Go value into plain JSON types (map[string]any,
// []any, string, float64, bool, nil). Typed structs round-trip through
// encoding/json; values that already have a plain shape pass through
// untouched. Query evaluation and passport assembly both expect this form.
func NormalizeJSON(v any) (any, error) {
	switch v.(type) {
	case nil, map[string]any, []any, string, float64, bool:
		return v, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
