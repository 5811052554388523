package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/dmitrymomot/formintake/pkg/clientip"
)

// HashIP returns hex(sha256(trim(ip) + salt)). The boolean is false when ip is
// empty or whitespace only, in which case no hash exists.
func HashIP(ip, salt string) (string, bool) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return "", false
	}

	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:]), true
}

// RequestIP hashes the client address of r as resolved by clientip.GetIP.
func RequestIP(r *http.Request, salt string) (string, bool) {
	return HashIP(clientip.GetIP(r), salt)
}
