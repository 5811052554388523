package clientip

import (
	"net"
	"net/http"
	"strings"
)

// HeaderForwardedFor is the proxy header consulted before RemoteAddr.
const HeaderForwardedFor = "X-Forwarded-For"

// GetIP returns the normalized client IP of r, or an empty string when
// neither the forwarded header nor RemoteAddr holds a valid address.
func GetIP(r *http.Request) string {
	if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := parseIP(first); ip != "" {
			return ip
		}
	}

	return remoteIP(r)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}

// GetTrustedIP returns the address seen by the outermost of hops trusted
// proxies. Each proxy appends its peer to X-Forwarded-For, so the entry hops
// positions from the right is the first one a client cannot forge. With zero
// hops, or when that entry is not an IP, the peer address is used.
func GetTrustedIP(r *http.Request, hops int) string {
	if hops > 0 {
		var entries []string
		for _, v := range r.Header.Values(HeaderForwardedFor) {
			entries = append(entries, strings.Split(v, ",")...)
		}
		if len(entries) > 0 {
			if ip := parseIP(entries[max(len(entries)-hops, 0)]); ip != "" {
				return ip
			}
		}
	}
	return remoteIP(r)
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}
