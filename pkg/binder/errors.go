package binder

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrBinderNotApplicable  = errors.New("binder not applicable to request")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrMalformedJSON        = errors.New("malformed JSON request body")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrFailedToParseQuery   = errors.New("failed to parse query parameters")
	ErrFailedToParsePath    = errors.New("failed to parse path parameters")
)

// FieldError reports a decoded value that has the wrong type for its field.
type FieldError struct {
	Field    string
	Expected string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: must be %s", e.Field, e.Expected)
}

// Unwrap lets errors.Is(err, ErrMalformedJSON) match type errors too.
func (e *FieldError) Unwrap() error {
	return ErrMalformedJSON
}

// describeKind names a Go type the way a JSON client thinks about it.
func describeKind(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "a value"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Map, reflect.Struct:
		return "an object"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	default:
		return "a value"
	}
}
