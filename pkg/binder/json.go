package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxJSONSize is the body limit used when no option overrides it.
const DefaultMaxJSONSize = 100 << 10 // 100 KiB

// JSONOption configures the JSON binder.
type JSONOption func(*jsonConfig)

type jsonConfig struct {
	maxSize      int64
	allowUnknown bool
	skipBodyless bool
}

// WithMaxBodySize overrides DefaultMaxJSONSize. Non-positive values are ignored.
func WithMaxBodySize(n int64) JSONOption {
	return func(c *jsonConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithUnknownFields accepts object keys that have no matching struct field.
func WithUnknownFields() JSONOption {
	return func(c *jsonConfig) { c.allowUnknown = true }
}

// JSON decodes the request body into v.
//
// GET, HEAD and DELETE requests without a body return ErrBinderNotApplicable
// so the binder can be chained with Query and Path.
func JSON(opts ...JSONOption) func(r *http.Request, v any) error {
	cfg := jsonConfig{maxSize: DefaultMaxJSONSize, skipBodyless: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request, v any) error {
		if cfg.skipBodyless && isBodyless(r) {
			return ErrBinderNotApplicable
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: got %q, expected application/json", ErrUnsupportedMediaType, contentType)
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, cfg.maxSize+1))
		if err != nil {
			return fmt.Errorf("%w: read body: %v", ErrMalformedJSON, err)
		}
		if int64(len(body)) > cfg.maxSize {
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, cfg.maxSize)
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		if !cfg.allowUnknown {
			dec.DisallowUnknownFields()
		}

		if err := dec.Decode(v); err != nil {
			var typeErr *json.UnmarshalTypeError
			switch {
			case errors.As(err, &typeErr) && typeErr.Field != "":
				return &FieldError{Field: typeErr.Field, Expected: describeKind(typeErr.Type)}
			case errors.Is(err, io.EOF):
				return fmt.Errorf("%w: empty body", ErrMalformedJSON)
			default:
				return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
			}
		}

		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON value", ErrMalformedJSON)
		}
		return nil
	}
}

func isBodyless(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return r.ContentLength <= 0
	}
	return false
}
