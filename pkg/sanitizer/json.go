package sanitizer

// JSON returns a copy of v with angle brackets removed from every string it
// contains, including object keys. Values of other types pass through.
func JSON(v any) any {
	switch val := v.(type) {
	case string:
		return StripAngleBrackets(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = JSON(item)
		}
		return out
	case map[string]any:
		return JSONObject(val)
	default:
		return v
	}
}

// JSONObject sanitizes keys and values of m. Keys that collapse to the same
// sanitized key keep only one of their values.
func JSONObject(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	out := make(map[string]any, len(m))
	for key, value := range m {
		out[StripAngleBrackets(key)] = JSON(value)
	}
	return out
}
