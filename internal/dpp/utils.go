package dpp

// CleanNulls recursively removes nil values from maps and slices. Empty
// containers are kept; only explicit nulls disappear.
func CleanNulls(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			if value == nil {
				continue
			}
			out[key] = CleanNulls(value)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			if item == nil {
				continue
			}
			out = append(out, CleanNulls(item))
		}
		return out
	default:
		return v
	}
}
