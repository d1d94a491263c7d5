package geo

import "errors"

var (
	// ErrProviderUnavailable indicates the provider could not be reached
	// or returned an unusable response.
	ErrProviderUnavailable = errors.New("geo provider unavailable")

	// ErrLookupFailed indicates the provider answered but declined to
	// resolve the address.
	ErrLookupFailed = errors.New("geo lookup failed")
)
