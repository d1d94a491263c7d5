package webhook

import "time"

// sendOptions holds per-call delivery configuration.
type sendOptions struct {
	timeout time.Duration
	headers map[string]string
}

func defaultSendOptions() *sendOptions {
	return &sendOptions{
		timeout: 5 * time.Second,
		headers: make(map[string]string),
	}
}

// SendOption configures a single Send call.
type SendOption func(*sendOptions)

// WithTimeout sets the per-call timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) SendOption {
	return func(o *sendOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithHeader adds a custom request header.
func WithHeader(key, value string) SendOption {
	return func(o *sendOptions) {
		if key != "" {
			o.headers[key] = value
		}
	}
}

// WithBearerToken sets the Authorization header with a bearer token.
func WithBearerToken(token string) SendOption {
	return func(o *sendOptions) {
		if token != "" {
			o.headers["Authorization"] = "Bearer " + token
		}
	}
}
