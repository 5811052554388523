// Package submission implements the form intake module: accepting
// submissions from the public form, listing and deleting them for
// administrators, and a consent-filtered public listing.
//
// The module is split into the Storage port (PostgreSQL and in-memory
// implementations), the Service holding validation, sanitization and
// pagination rules, and HTTP handlers built with handler.Wrap. Route guards
// (rate limiting, CSRF, API key) are injected by the application so the
// module stays independent of their configuration.
//
//	svc := submission.NewService(submission.NewPGStorage(pool), submission.Config{IPSalt: salt}, log)
//	api := submission.NewHTTPHandler(svc, submission.Guards{...}, errorHandler)
//
//	r.Mount("/api", submission.Router(submission.RouterOptions{
//		Submissions: api,
//		Public:      api.Public(),
//	}))
package submission
