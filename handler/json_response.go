package handler

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the envelope of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes an error for API clients.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status  int
	headers http.Header
	body    any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for k, vs := range j.headers {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	return writeJSON(w, j.status, j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus sets the status code. Defaults to 200.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// WithJSONHeader adds a response header.
func WithJSONHeader(key, value string) JSONOption {
	return func(r *jsonResponse) {
		if r.headers == nil {
			r.headers = make(http.Header)
		}
		r.headers.Add(key, value)
	}
}

// JSON encodes v as the response body as is.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// errorResponse defers an error to the wrapping ErrorHandler so it is
// classified and logged in one place.
type errorResponse struct {
	err error
}

func (e errorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return writeErrorJSON(w, classifyError(e.err))
}

// JSONError returns a Response that reports err through the error handler.
func JSONError(err error) Response {
	if err == nil {
		err = ErrInternalServerError
	}
	return errorResponse{err: err}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
