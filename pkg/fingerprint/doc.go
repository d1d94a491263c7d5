// Package fingerprint generates short deterministic request fingerprints
// for visitor correlation.
//
// A fingerprint is a truncated SHA-256 hash over the client IP address,
// User-Agent, Accept-Language, and Accept-Encoding headers. Identical
// inputs always yield the identical fingerprint; any differing input
// yields a different fingerprint with overwhelming probability.
//
// Fingerprints are display/correlation identifiers only. They are not
// cryptographic identity proof and must not be used as a security
// control.
package fingerprint
