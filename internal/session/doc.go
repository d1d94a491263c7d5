// Package session derives per-request session attributes: a stable
// browser fingerprint, the visitor hash, the new/returning label, and a
// passive trust estimate built from headers real browsers always send.
package session
