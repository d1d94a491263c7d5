package session

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/visitrack/internal/visitor"
	"github.com/dmitrymomot/visitrack/pkg/clientip"
	"github.com/dmitrymomot/visitrack/pkg/fingerprint"
)

// Session type labels derived from the dedup classification.
const (
	TypeNew       = "new"
	TypeReturning = "returning"
)

// Trust level buckets derived from the trust score.
const (
	TrustLow    = "low"
	TrustMedium = "medium"
	TrustHigh   = "high"
)

// Info describes the per-request session analysis: a browser
// fingerprint, the visitor hash, and a header-based trust estimate.
type Info struct {
	Fingerprint string `json:"fingerprint"`
	VisitorHash string `json:"visitorHash"`
	SessionType string `json:"sessionType"`
	TrustScore  int    `json:"trustScore"`
	TrustLevel  string `json:"trustLevel"`
}

// Analyze derives session attributes from the request and its dedup
// classification. It is pure over the request headers and never fails.
func Analyze(r *http.Request, cls visitor.Classification) Info {
	sessionType := TypeReturning
	if cls.IsUnique {
		sessionType = TypeNew
	}

	score := TrustScore(r)

	return Info{
		Fingerprint: fingerprint.Generate(r),
		VisitorHash: visitor.Identity(clientip.GetIP(r), r.UserAgent()),
		SessionType: sessionType,
		TrustScore:  score,
		TrustLevel:  TrustLevelFor(score),
	}
}

// TrustScore estimates how browser-like a request is from passive header
// signals. The baseline is 50; each signal a real browser typically
// sends adds 10. The score only ranks requests relative to each other,
// it is not an abuse verdict.
func TrustScore(r *http.Request) int {
	score := 50

	// Modern browsers attach Sec-Fetch-* metadata on every request.
	if r.Header.Get("Sec-Fetch-Site") != "" || r.Header.Get("Sec-Fetch-Mode") != "" || r.Header.Get("Sec-Fetch-Dest") != "" {
		score += 10
	}

	// Real browsers advertise several languages with q-weights.
	if strings.Contains(r.Header.Get("Accept-Language"), ",") {
		score += 10
	}

	// Compression support in Accept-Encoding.
	enc := strings.ToLower(r.Header.Get("Accept-Encoding"))
	if strings.Contains(enc, "gzip") || strings.Contains(enc, "br") || strings.Contains(enc, "deflate") || strings.Contains(enc, "zstd") {
		score += 10
	}

	if r.Header.Get("Cache-Control") != "" {
		score += 10
	}

	if r.Header.Get("DNT") != "" {
		score += 10
	}

	return score
}

// TrustLevelFor buckets a trust score: below 60 is low, 60 through 79
// is medium, 80 and above is high.
func TrustLevelFor(score int) string {
	switch {
	case score >= 80:
		return TrustHigh
	case score >= 60:
		return TrustMedium
	default:
		return TrustLow
	}
}
