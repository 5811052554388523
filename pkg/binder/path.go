package binder

import (
	"fmt"
	"net/http"
)

// Path binds route parameters to fields tagged `path:"name"`, using extractor
// to read them (chi.URLParam fits the signature).
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor is nil", ErrFailedToParsePath)
		}
		return bindToStruct(v, "path", func(name string) []string {
			if value := extractor(r, name); value != "" {
				return []string{value}
			}
			return nil
		}, ErrFailedToParsePath)
	}
}
