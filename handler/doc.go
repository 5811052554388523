// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request value already populated by
// the configured binders, and returns a Response:
//
//	create := handler.HandlerFunc[handler.Context, CreateRequest](
//		func(ctx handler.Context, req CreateRequest) handler.Response {
//			id, err := svc.Create(ctx, req)
//			if err != nil {
//				return handler.JSONError(err)
//			}
//			return handler.JSON(map[string]any{"id": id}, handler.WithJSONStatus(http.StatusCreated))
//		},
//	)
//
//	r.Post("/", handler.Wrap(create,
//		handler.WithBinders[handler.Context, CreateRequest](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, CreateRequest](errorHandler),
//	))
//
// Errors from binders, from JSONError responses and from rendering go through
// the configured ErrorHandler. NewErrorHandler classifies them into the JSON
// error envelope {"error":{"code","message","details"}} and logs them with
// the request path and id. Server errors never leak their text to clients.
package handler
