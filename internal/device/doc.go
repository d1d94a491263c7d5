// Package device classifies the client device from the User-Agent
// header. It is a thin adapter over pkg/useragent that flattens the
// parsed result into the JSON shape carried by visit events.
package device
