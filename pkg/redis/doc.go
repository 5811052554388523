// Package redis connects a go-redis client from a REDIS_URL style
// connection string and exposes a readiness probe. Redis is optional for the
// service: an empty URL means "not configured" and callers fall back to
// in-process implementations.
package redis
