package validator

// True validates that value is exactly true. message distinguishes a refused
// flag from other boolean failures.
func True(field string, value bool, message string) Rule {
	if message == "" {
		message = "must be true"
	}
	return Rule{
		Check: func() bool {
			return value
		},
		Error: ValidationError{
			Field:          field,
			Message:        message,
			TranslationKey: "validation.true",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// Present validates that an optional value was supplied.
func Present[T any](field string, value *T, message string) Rule {
	if message == "" {
		message = "field is required"
	}
	return Rule{
		Check: func() bool {
			return value != nil
		},
		Error: ValidationError{
			Field:          field,
			Message:        message,
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
