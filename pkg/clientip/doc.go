// Package clientip provides utilities for extracting the originating
// client's IP address from an *http.Request when the application is
// deployed behind one or more reverse proxies.
//
// The resolution algorithm examines several headers in descending
// priority until the first valid IP address is found:
//
//  1. X-Forwarded-For – comma-separated list (the first valid IP is used)
//  2. X-Real-IP – set by reverse proxies such as Nginx
//  3. CF-Connecting-IP – Cloudflare
//  4. X-Client-IP – miscellaneous proxies and CDNs
//  5. RemoteAddr – TCP peer address as a fallback
//
// IPv4-mapped IPv6 addresses ("::ffff:203.0.113.5") are normalized to
// their dotted-decimal form so the same client always resolves to the
// same address string.
//
// Helper functions are provided for common scenarios:
//
//   - GetIP extracts the client IP from an *http.Request.
//   - SetIPToContext and GetIPFromContext store/retrieve the resolved
//     address inside a context.Context.
//   - Middleware is a net/http compatible middleware that adds the IP to
//     the request's context so downstream handlers can fetch it without
//     duplicating the resolution logic.
package clientip
