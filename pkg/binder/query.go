package binder

import "net/http"

// Query binds URL query parameters to fields tagged `query:"name"`.
// Fields without a tag are skipped.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", func(name string) []string {
			return r.URL.Query()[name]
		}, ErrFailedToParseQuery)
	}
}
