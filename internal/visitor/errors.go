package visitor

import "errors"

var (
	// ErrStoreUnavailable indicates the backing store could not serve
	// the classification.
	ErrStoreUnavailable = errors.New("visit store unavailable")
)
