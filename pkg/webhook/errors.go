package webhook

import "errors"

var (
	ErrDeliveryFailed = errors.New("webhook delivery failed")
	ErrInvalidURL     = errors.New("invalid webhook URL")
	ErrTimeout        = errors.New("webhook request timeout")
)
