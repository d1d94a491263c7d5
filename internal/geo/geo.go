package geo

import (
	"strings"
	"time"
)

// Unknown is the sentinel value for geo attributes that could not be
// resolved.
const Unknown = "Unknown"

// Info is the normalized geolocation shape. Providers disagree on field
// names for the same concepts; lookups merge their responses into this
// one form. Constructed fresh per request, never cached.
type Info struct {
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Region      string  `json:"region"`
	City        string  `json:"city"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
	ISP         string  `json:"isp"`
	Org         string  `json:"org,omitempty"`
	ASN         string  `json:"asn,omitempty"`
	Proxy       bool    `json:"proxy"`
	Hosting     bool    `json:"hosting"`
	Mobile      bool    `json:"mobile"`
	Flag        string  `json:"flag"`
	Local       bool    `json:"local,omitempty"`
	Error       string  `json:"error,omitempty"`
	Threat      Threat  `json:"threat"`
}

// Config holds geo resolver configuration.
type Config struct {
	PrimaryURL  string        `env:"GEO_PRIMARY_URL" envDefault:"http://ip-api.com"` // PrimaryURL is the base URL of the primary provider (ip-api.com shape).
	FallbackURL string        `env:"GEO_FALLBACK_URL" envDefault:"https://ipapi.co"` // FallbackURL is the base URL of the fallback provider (ipapi.co shape).
	Timeout     time.Duration `env:"GEO_TIMEOUT" envDefault:"5s"`                    // Timeout bounds each provider call so a slow provider cannot stall the request.
}

// localInfo is the short-circuit result for loopback and private-range
// addresses. No provider can say anything useful about them.
func localInfo() Info {
	return Info{
		Country:     "Local",
		CountryCode: "LO",
		Region:      "Local",
		City:        "Local",
		Timezone:    "Local",
		ISP:         "Private Network",
		Flag:        "🏠",
		Local:       true,
	}
}

// unknownInfo is the degraded result when every provider failed. The
// Error field carries the marker; the resolver never propagates the
// failure itself.
func unknownInfo(errMsg string) Info {
	return Info{
		Country:     Unknown,
		CountryCode: Unknown,
		Region:      Unknown,
		City:        Unknown,
		Timezone:    Unknown,
		ISP:         Unknown,
		Flag:        FlagUnknown,
		Error:       errMsg,
	}
}

// FlagUnknown is returned for country codes that have no flag mapping.
const FlagUnknown = "🌐"

// Flag maps an ISO 3166-1 alpha-2 country code to its emoji flag by
// composing regional indicator symbols. Unknown or malformed codes map
// to the generic globe sentinel, never an error.
func Flag(countryCode string) string {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return FlagUnknown
	}

	const regionalIndicatorA = 0x1F1E6
	return string([]rune{
		regionalIndicatorA + rune(code[0]-'A'),
		regionalIndicatorA + rune(code[1]-'A'),
	})
}
