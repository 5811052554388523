package validator

import (
	"errors"
	"fmt"
	"strings"
)

// Numeric is the constraint for numeric rules.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ValidationError describes a single failed rule.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors is the error returned by Apply when at least one rule fails.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns all messages recorded for field.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// Fields lists failed fields in first-failure order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool, len(ve))
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// ToMap groups messages by field.
func (ve ValidationErrors) ToMap() map[string][]string {
	if len(ve) == 0 {
		return nil
	}
	m := make(map[string][]string, len(ve))
	for _, err := range ve {
		m[err.Field] = append(m[err.Field], err.Message)
	}
	return m
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule is a single validation check.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply evaluates all rules and returns ValidationErrors if any fail.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// When returns rules unchanged if cond holds and no rules otherwise.
// Used for optional fields: validator.Apply(validator.When(email != "", ...)...).
func When(cond bool, rules ...Rule) []Rule {
	if !cond {
		return nil
	}
	return rules
}

// ExtractValidationErrors unwraps ValidationErrors from err.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var verrs ValidationErrors
	return errors.As(err, &verrs)
}

// NewError builds a single-field ValidationErrors value. Useful when a
// failure is detected outside of a Rule, e.g. while decoding input.
func NewError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}
