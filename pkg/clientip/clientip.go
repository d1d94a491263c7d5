package clientip

import (
	"net"
	"net/http"
	"strings"
)

// GetIP returns the client's IP address from an HTTP request.
// Headers are examined in descending priority until the first valid
// address is found:
//  1. X-Forwarded-For (standard proxy header, first valid entry wins)
//  2. X-Real-IP (Nginx reverse proxy)
//  3. CF-Connecting-IP (Cloudflare)
//  4. X-Client-IP (miscellaneous proxies and CDNs)
//  5. RemoteAddr (direct connection fallback)
func GetIP(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs, find the first valid one
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for _, ip := range strings.Split(forwarded, ",") {
			if parsed := parseIP(strings.TrimSpace(ip)); parsed != "" {
				return parsed
			}
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if parsed := parseIP(ip); parsed != "" {
			return parsed
		}
	}

	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		if parsed := parseIP(ip); parsed != "" {
			return parsed
		}
	}

	if ip := r.Header.Get("X-Client-IP"); ip != "" {
		if parsed := parseIP(ip); parsed != "" {
			return parsed
		}
	}

	// Fallback to remote address
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If SplitHostPort fails, assume it's already just an IP
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes an IP address string.
// IPv4-mapped IPv6 notation ("::ffff:203.0.113.5") is collapsed to the
// plain IPv4 form. Returns empty string if the IP is invalid.
func parseIP(ipStr string) string {
	ipStr = strings.TrimSpace(ipStr)
	if ipStr == "" {
		return ""
	}

	ip := net.ParseIP(strings.TrimPrefix(ipStr, "::ffff:"))
	if ip == nil {
		return ""
	}

	// net.IP.String collapses IPv4-in-IPv6 to dotted decimal
	return ip.String()
}
