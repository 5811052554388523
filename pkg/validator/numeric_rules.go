package validator

import (
	"fmt"
	"strconv"
	"strings"
)

// Integer validates that value parses as a base 10 integer.
func Integer(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := strconv.Atoi(strings.TrimSpace(value))
			return err == nil
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be an integer",
			TranslationKey: "validation.integer",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// MinNum validates value >= min.
func MinNum[T Numeric](field string, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at least %v", min),
			TranslationKey: "validation.min",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

// MaxNum validates value <= max.
func MaxNum[T Numeric](field string, value T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %v", max),
			TranslationKey: "validation.max",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}
