// Package webhook delivers JSON payloads to HTTP endpoints.
//
// Delivery is deliberately single-attempt with a bounded per-call
// timeout: the package is meant for best-effort notification fan-out
// where a failed delivery is logged and dropped, never retried.
//
// Example:
//
//	sender := webhook.NewSender()
//	err := sender.Send(ctx, url, payload,
//		webhook.WithTimeout(3*time.Second),
//		webhook.WithBearerToken(apiKey),
//	)
package webhook
