// Package logger builds *slog.Logger instances from functional options and
// decorates their handlers so request-scoped values stored in a
// context.Context (request ID, client IP, environment) are attached to every
// record logged with a *Context method.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result with LogHandlerDecorator, which runs the registered ContextExtractor
// callbacks on each Handle call.
//
// Middleware writes one access-log record per HTTP request. Credential-like
// request headers are redacted before they reach the log.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "formintake"),
//		logger.WithLevel(logger.ParseLevel("debug")),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	r.Use(logger.Middleware(log))
package logger
