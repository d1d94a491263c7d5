package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/dmitrymomot/visitrack/pkg/clientip"
)

// DisplayLength is the number of hex characters a fingerprint is
// truncated to. Long enough for correlation across log lines, short
// enough for chat messages and dashboards.
const DisplayLength = 16

// Generate creates a request fingerprint from the HTTP request.
// It combines the client IP, User-Agent, Accept-Language, and
// Accept-Encoding headers into a truncated SHA-256 hex string.
// The result is deterministic for identical inputs and is meant for
// display and correlation, not as cryptographic identity proof.
func Generate(r *http.Request) string {
	return FromComponents(
		clientip.GetIP(r),
		r.UserAgent(),
		r.Header.Get("Accept-Language"),
		r.Header.Get("Accept-Encoding"),
	)
}

// FromComponents builds a fingerprint from raw component values.
// Empty components are skipped so that a missing header and an empty
// header produce the same fingerprint.
func FromComponents(components ...string) string {
	filtered := make([]string, 0, len(components))
	for _, comp := range components {
		if comp != "" {
			filtered = append(filtered, comp)
		}
	}

	hash := sha256.Sum256([]byte(strings.Join(filtered, "|")))
	return hex.EncodeToString(hash[:])[:DisplayLength]
}

// Validate compares the current request fingerprint with a stored fingerprint.
// Returns true if they match, false otherwise.
func Validate(r *http.Request, stored string) bool {
	return Generate(r) == stored
}
