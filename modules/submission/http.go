package submission

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/formintake/handler"
	"github.com/dmitrymomot/formintake/pkg/binder"
	"github.com/dmitrymomot/formintake/pkg/clientip"
	"github.com/dmitrymomot/formintake/pkg/sanitizer"
	"github.com/dmitrymomot/formintake/pkg/validator"
)

// DefaultBodyLimit caps the create request body.
const DefaultBodyLimit int64 = 100 << 10

// Guards are the route level middlewares the application provides. A nil
// guard lets every request through.
type Guards struct {
	RateLimit func(http.Handler) http.Handler
	CSRF      func(http.Handler) http.Handler
	APIKey    func(http.Handler) http.Handler
}

type HTTPHandler struct {
	svc          *Service
	guards       Guards
	errorHandler handler.ErrorHandler[handler.Context]
	bodyLimit    int64
}

type HTTPOption func(*HTTPHandler)

// WithBodyLimit overrides DefaultBodyLimit.
func WithBodyLimit(n int64) HTTPOption {
	return func(h *HTTPHandler) {
		if n > 0 {
			h.bodyLimit = n
		}
	}
}

func NewHTTPHandler(svc *Service, guards Guards, errorHandler handler.ErrorHandler[handler.Context], opts ...HTTPOption) *HTTPHandler {
	h := &HTTPHandler{
		svc:          svc,
		guards:       guards,
		errorHandler: errorHandler,
		bodyLimit:    DefaultBodyLimit,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle serves the admin and intake routes under /submissions.
func (h *HTTPHandler) Handle() http.Handler {
	r := chi.NewRouter()

	r.With(guard(h.guards.RateLimit), guard(h.guards.CSRF)).
		Post("/", handler.Wrap(h.create,
			handler.WithBinders[handler.Context, CreateRequest](
				binder.JSON(binder.WithMaxBodySize(h.bodyLimit), binder.WithUnknownFields()),
			),
			handler.WithErrorHandler[handler.Context, CreateRequest](h.errorHandler),
		))

	r.Group(func(admin chi.Router) {
		admin.Use(guard(h.guards.APIKey))

		admin.Get("/", handler.Wrap(h.list,
			handler.WithBinders[handler.Context, ListRequest](binder.Query()),
			handler.WithErrorHandler[handler.Context, ListRequest](h.errorHandler),
		))

		admin.With(guard(h.guards.CSRF)).
			Delete("/by-email/{email}", handler.Wrap(h.deleteByEmail,
				handler.WithBinders[handler.Context, DeleteByEmailRequest](binder.Path(pathParam)),
				handler.WithErrorHandler[handler.Context, DeleteByEmailRequest](h.errorHandler),
			))

		admin.With(guard(h.guards.CSRF)).
			Delete("/{id}", handler.Wrap(h.delete,
				handler.WithBinders[handler.Context, DeleteRequest](binder.Path(pathParam)),
				handler.WithErrorHandler[handler.Context, DeleteRequest](h.errorHandler),
			))
	})

	return r
}

// Public returns the unauthenticated listing as a separate mountable.
func (h *HTTPHandler) Public() Mountable {
	return publicHandler{h: h}
}

type publicHandler struct {
	h *HTTPHandler
}

func (p publicHandler) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/", handler.Wrap(p.h.listPublic,
		handler.WithBinders[handler.Context, PublicListRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, PublicListRequest](p.h.errorHandler),
	))
	return r
}

func (h *HTTPHandler) create(ctx handler.Context, req CreateRequest) handler.Response {
	r := ctx.Request()
	id, err := h.svc.Create(ctx, CreateInput{
		Request:   req,
		ClientIP:  clientip.GetIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(CreateResponse{ID: id}, handler.WithJSONStatus(http.StatusCreated))
}

func (h *HTTPHandler) list(ctx handler.Context, req ListRequest) handler.Response {
	filter, err := req.Filter()
	if err != nil {
		return handler.JSONError(err)
	}

	page, err := h.svc.List(ctx, filter)
	if err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(page)
}

func (h *HTTPHandler) listPublic(ctx handler.Context, req PublicListRequest) handler.Response {
	filter, err := req.Filter()
	if err != nil {
		return handler.JSONError(err)
	}

	page, err := h.svc.ListPublic(ctx, filter)
	if err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(page)
}

func (h *HTTPHandler) delete(ctx handler.Context, req DeleteRequest) handler.Response {
	// A malformed id cannot match any row.
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return handler.JSONError(handler.ErrNotFound.WithMessage(ErrNotFound.Error()))
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		return handler.JSONError(mapError(err))
	}
	return handler.Empty()
}

func (h *HTTPHandler) deleteByEmail(ctx handler.Context, req DeleteByEmailRequest) handler.Response {
	email := sanitizer.Email(req.Email)
	if err := validator.Apply(validator.ValidEmail("email", email)); err != nil {
		return handler.JSONError(err)
	}

	n, err := h.svc.DeleteByEmail(ctx, email)
	if err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(DeleteByEmailResponse{Deleted: n})
}

func mapError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return handler.ErrNotFound.WithMessage(err.Error())
	}
	return err
}

// pathParam reads a chi route parameter. chi matches on the escaped path
// when one exists, so the value is unescaped here.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func guard(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}
