// Package httpserver runs an http.Server until its context is cancelled or
// the process receives SIGINT/SIGTERM, then shuts it down gracefully. It also
// provides JSON liveness and readiness handlers.
package httpserver
