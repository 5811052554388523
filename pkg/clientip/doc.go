// Package clientip resolves the originating client address of an HTTP request.
//
// The first entry of X-Forwarded-For wins when it parses as an IP address;
// otherwise the direct connection address from RemoteAddr is used. Clients
// can write that entry themselves, so anything enforcing limits should use
// GetTrustedIP, which reads the entry appended by the outermost trusted proxy.
//
// Middleware stores the resolved address in the request context so handlers
// and log records can read it with GetIPFromContext and LoggerExtractor.
package clientip
