// Package geo resolves client addresses to geolocation attributes with
// a primary provider, a single fallback, and graceful degradation.
//
// Private, loopback and link-local addresses short circuit to a local
// result without any network call. When both providers fail the
// resolver returns a sentinel Info with every attribute set to Unknown
// and the Error field populated; resolution itself never fails, so geo
// problems can never break visit tracking.
package geo
