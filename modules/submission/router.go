package submission

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects the handlers mounted by Router. Nil entries are
// skipped.
type RouterOptions struct {
	Submissions Mountable
	Public      Mountable
}

// Router builds the module router, meant to be mounted under /api:
//
//	r.Mount("/api", submission.Router(submission.RouterOptions{
//	    Submissions: api,
//	    Public:      api.Public(),
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Submissions != nil {
		r.Mount("/submissions", opts.Submissions.Handle())
	}
	if opts.Public != nil {
		r.Mount("/public/submissions", opts.Public.Handle())
	}

	return r
}
