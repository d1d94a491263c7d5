package logger

import (
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Sink records a notification sink name under the key "sink".
func Sink(name string) slog.Attr {
	return slog.String("sink", name)
}

// Visitor records the visitor identity hash under the key "visitor".
// If id is empty, it returns an empty Attr.
func Visitor(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("visitor", id)
}

// Provider records a geolocation provider name under the key "provider".
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
