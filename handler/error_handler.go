package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formintake/pkg/binder"
	"github.com/dmitrymomot/formintake/pkg/logger"
	"github.com/dmitrymomot/formintake/pkg/requestid"
	"github.com/dmitrymomot/formintake/pkg/validator"
)

const genericErrorMessage = "internal server error"

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string][]string
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrInternalServerError.Key,
		Message:    genericErrorMessage,
	}

	var (
		verrs    validator.ValidationErrors
		fieldErr *binder.FieldError
		httpErr  HTTPError
	)

	switch {
	case errors.As(err, &verrs):
		info.StatusCode = http.StatusBadRequest
		info.Code = "validation_error"
		info.Message = "validation failed"
		info.Details = verrs.ToMap()
	case errors.As(err, &fieldErr):
		info.StatusCode = http.StatusBadRequest
		info.Code = "validation_error"
		info.Message = "validation failed"
		info.Details = map[string][]string{fieldErr.Field: {"must be " + fieldErr.Expected}}
	case errors.Is(err, binder.ErrBodyTooLarge):
		info.StatusCode = http.StatusRequestEntityTooLarge
		info.Code = ErrRequestEntityTooLarge.Key
		info.Message = "request body too large"
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		info.StatusCode = http.StatusUnsupportedMediaType
		info.Code = ErrUnsupportedMediaType.Key
		info.Message = "content type must be application/json"
	case errors.Is(err, binder.ErrMalformedJSON):
		info.StatusCode = http.StatusBadRequest
		info.Code = "malformed_body"
		info.Message = "malformed JSON body"
	case errors.Is(err, binder.ErrFailedToParseQuery), errors.Is(err, binder.ErrFailedToParsePath):
		info.StatusCode = http.StatusBadRequest
		info.Code = ErrBadRequest.Key
		info.Message = "invalid request parameters"
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Code = httpErr.Key
		info.Message = httpErr.Message
		if info.Message == "" {
			info.Message = http.StatusText(httpErr.Code)
		}
		if httpErr.Code >= http.StatusInternalServerError {
			info.Message = genericErrorMessage
		}
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

func writeErrorJSON(w http.ResponseWriter, info ErrorInfo) error {
	return writeJSON(w, info.StatusCode, ErrorBody{Error: ErrorDetail{
		Code:    info.Code,
		Message: info.Message,
		Details: info.Details,
	}})
}

func logError(log *slog.Logger, r *http.Request, err error, info ErrorInfo) {
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		slog.Int("status_code", info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("error_handler"),
	)
}

// Responder classifies err, logs it and writes the JSON error envelope.
// Middleware outside of Wrap uses it to answer with the same format.
type Responder func(w http.ResponseWriter, r *http.Request, err error)

// NewResponder builds a Responder that logs through log.
func NewResponder(log *slog.Logger) Responder {
	if log == nil {
		log = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request, err error) {
		info := classifyError(err)
		logError(log, r, err, info)
		if writeErr := writeErrorJSON(w, info); writeErr != nil {
			log.ErrorContext(r.Context(), "failed to write error response",
				logger.Error(writeErr),
				logger.Component("error_handler"),
			)
		}
	}
}

// NewErrorHandler returns the ErrorHandler used by every Wrap call.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	respond := NewResponder(log)
	return func(ctx Context, err error) {
		respond(ctx.ResponseWriter(), ctx.Request(), err)
	}
}
