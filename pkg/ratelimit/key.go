package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/dmitrymomot/formintake/pkg/clientip"
)

// maxKeyLength bounds storage key size. Longer composite keys are hashed.
const maxKeyLength = 64

// KeyFunc extracts the rate limit identity from a request. An empty key
// exempts the request.
type KeyFunc func(*http.Request) string

// ByIP keys requests by client IP, preferring the value stored by
// clientip.Middleware.
func ByIP() KeyFunc {
	return func(r *http.Request) string {
		if ip := clientip.GetIPFromContext(r.Context()); ip != "" {
			return ip
		}
		return clientip.GetIP(r)
	}
}

// ByTrustedIP keys requests by the address reported by the outermost of hops
// trusted proxies. Unlike ByIP it ignores X-Forwarded-For entries the client
// could have written itself.
func ByTrustedIP(hops int) KeyFunc {
	return func(r *http.Request) string {
		return clientip.GetTrustedIP(r, hops)
	}
}

// Composite joins the non-empty results of keyFuncs with ":". Results longer
// than 64 bytes are replaced by a 128-bit SHA-256 prefix in hex.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}
		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			hash := sha256.Sum256([]byte(combined))
			return hex.EncodeToString(hash[:16])
		}
		return combined
	}
}
