package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Provider resolves a public address to geolocation attributes.
// Implementations map their provider-specific response fields into the
// normalized Info shape.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, addr string) (Info, error)
}

func newProviderClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// fetchJSON issues the GET request and decodes the body into dst.
// Responses are capped at 1MB; geolocation payloads are tiny.
func fetchJSON(ctx context.Context, client *http.Client, reqURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(dst); err != nil {
		return fmt.Errorf("%w: decoding response: %w", ErrProviderUnavailable, err)
	}
	return nil
}

// IPAPIProvider queries an ip-api.com compatible endpoint.
type IPAPIProvider struct {
	baseURL string
	client  *http.Client
}

// NewIPAPIProvider creates the primary provider against the given base
// URL (e.g. "http://ip-api.com").
func NewIPAPIProvider(baseURL string, timeout time.Duration) *IPAPIProvider {
	return &IPAPIProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  newProviderClient(timeout),
	}
}

func (p *IPAPIProvider) Name() string { return "ip-api" }

// ipAPIResponse mirrors the provider's JSON field names: note "lat",
// "lon", "regionName", and the combined "as" string.
type ipAPIResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Country    string  `json:"country"`
	CountryISO string  `json:"countryCode"`
	RegionName string  `json:"regionName"`
	City       string  `json:"city"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Timezone   string  `json:"timezone"`
	ISP        string  `json:"isp"`
	Org        string  `json:"org"`
	AS         string  `json:"as"`
	Proxy      bool    `json:"proxy"`
	Hosting    bool    `json:"hosting"`
	Mobile     bool    `json:"mobile"`
}

func (p *IPAPIProvider) Lookup(ctx context.Context, addr string) (Info, error) {
	reqURL := fmt.Sprintf("%s/json/%s?fields=status,message,country,countryCode,regionName,city,lat,lon,timezone,isp,org,as,proxy,hosting,mobile",
		p.baseURL, url.PathEscape(addr))

	var body ipAPIResponse
	if err := fetchJSON(ctx, p.client, reqURL, &body); err != nil {
		return Info{}, err
	}
	if body.Status != "success" {
		return Info{}, fmt.Errorf("%w: %s", ErrLookupFailed, orUnknown(body.Message))
	}

	return Info{
		Country:     orUnknown(body.Country),
		CountryCode: orUnknown(body.CountryISO),
		Region:      orUnknown(body.RegionName),
		City:        orUnknown(body.City),
		Latitude:    body.Lat,
		Longitude:   body.Lon,
		Timezone:    orUnknown(body.Timezone),
		ISP:         orUnknown(body.ISP),
		Org:         body.Org,
		ASN:         body.AS,
		Proxy:       body.Proxy,
		Hosting:     body.Hosting,
		Mobile:      body.Mobile,
	}, nil
}

// IPAPICoProvider queries an ipapi.co compatible endpoint.
type IPAPICoProvider struct {
	baseURL string
	client  *http.Client
}

// NewIPAPICoProvider creates the fallback provider against the given
// base URL (e.g. "https://ipapi.co").
func NewIPAPICoProvider(baseURL string, timeout time.Duration) *IPAPICoProvider {
	return &IPAPICoProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  newProviderClient(timeout),
	}
}

func (p *IPAPICoProvider) Name() string { return "ipapi.co" }

// ipAPICoResponse mirrors the provider's JSON field names: here the
// coordinates are "latitude"/"longitude" and the country name is
// "country_name".
type ipAPICoResponse struct {
	Error       bool    `json:"error"`
	Reason      string  `json:"reason"`
	CountryName string  `json:"country_name"`
	CountryISO  string  `json:"country_code"`
	Region      string  `json:"region"`
	City        string  `json:"city"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
	Org         string  `json:"org"`
	ASN         string  `json:"asn"`
}

func (p *IPAPICoProvider) Lookup(ctx context.Context, addr string) (Info, error) {
	reqURL := fmt.Sprintf("%s/%s/json/", p.baseURL, url.PathEscape(addr))

	var body ipAPICoResponse
	if err := fetchJSON(ctx, p.client, reqURL, &body); err != nil {
		return Info{}, err
	}
	if body.Error {
		return Info{}, fmt.Errorf("%w: %s", ErrLookupFailed, orUnknown(body.Reason))
	}

	return Info{
		Country:     orUnknown(body.CountryName),
		CountryCode: orUnknown(body.CountryISO),
		Region:      orUnknown(body.Region),
		City:        orUnknown(body.City),
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		Timezone:    orUnknown(body.Timezone),
		ISP:         orUnknown(body.Org),
		Org:         body.Org,
		ASN:         body.ASN,
	}, nil
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
