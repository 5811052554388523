// Package binder decodes HTTP request data into typed request structs.
//
// Each constructor returns a func(r *http.Request, v any) error that can be
// passed to handler.WithBinders. Binders only touch the struct tags they own:
//
//	type ListRequest struct {
//		ID     string `path:"id"`
//		Cursor string `query:"cursor"`
//		Email  string `json:"email"`
//	}
//
//	handler.Wrap(h, handler.WithBinders[handler.Context, ListRequest](
//		binder.Path(chi.URLParam),
//		binder.Query(),
//	))
//
// JSON enforces a body size limit and the application/json media type.
// A JSON value of the wrong type for a field is reported as *FieldError so
// callers can attribute the failure to that field.
package binder
