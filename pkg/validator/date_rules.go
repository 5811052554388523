package validator

import "time"

// ValidRFC3339 validates an ISO 8601 timestamp with a time zone, with or
// without fractional seconds.
func ValidRFC3339(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := time.Parse(time.RFC3339Nano, value)
			return err == nil
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be an RFC 3339 timestamp",
			TranslationKey: "validation.datetime",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// DateBeforeOrEqual validates value <= limit. The error is attributed to
// field, which lets cross-field checks blame the lower bound.
func DateBeforeOrEqual(field string, value, limit time.Time) Rule {
	return Rule{
		Check: func() bool {
			return !value.After(limit)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must not be later than " + limit.UTC().Format(time.RFC3339),
			TranslationKey: "validation.date_before_or_equal",
			TranslationValues: map[string]any{
				"field": field,
				"limit": limit.UTC().Format(time.RFC3339),
			},
		},
	}
}
