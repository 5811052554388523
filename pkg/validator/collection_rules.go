package validator

// RequiredMap validates that a map has at least one entry.
func RequiredMap[K comparable, V any](field string, value map[K]V) Rule {
	return Rule{
		Check: func() bool {
			return len(value) > 0
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a non-empty object",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
