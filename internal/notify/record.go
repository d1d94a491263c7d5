package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/visitrack/internal/device"
	"github.com/dmitrymomot/visitrack/internal/geo"
	"github.com/dmitrymomot/visitrack/internal/session"
	"github.com/dmitrymomot/visitrack/internal/visitor"
)

// Tracking is the dedup outcome carried by a visit event.
type Tracking struct {
	IsUnique   bool      `json:"isUnique"`
	VisitCount int64     `json:"visitCount"`
	FirstVisit time.Time `json:"firstVisit"`
	LastVisit  time.Time `json:"lastVisit"`
}

// Request captures the request metadata worth forwarding to sinks.
type Request struct {
	IP       string `json:"ip"`
	Method   string `json:"method"`
	Path     string `json:"path"`
	Host     string `json:"host,omitempty"`
	Referrer string `json:"referrer,omitempty"`
}

// Record is the complete visit event delivered to every sink. It is
// immutable once built; sinks must not modify it.
type Record struct {
	EventID   string       `json:"eventId"`
	Timestamp time.Time    `json:"timestamp"`
	Tracking  Tracking     `json:"tracking"`
	Geo       geo.Info     `json:"geo"`
	Device    device.Info  `json:"device"`
	Session   session.Info `json:"session"`
	Request   Request      `json:"request"`
}

// NewRecord assembles a visit event with a fresh event ID.
func NewRecord(ts time.Time, cls visitor.Classification, g geo.Info, d device.Info, s session.Info, req Request) Record {
	return Record{
		EventID:   uuid.New().String(),
		Timestamp: ts.UTC(),
		Tracking: Tracking{
			IsUnique:   cls.IsUnique,
			VisitCount: cls.VisitCount,
			FirstVisit: cls.FirstVisit,
			LastVisit:  cls.LastVisit,
		},
		Geo:     g,
		Device:  d,
		Session: s,
		Request: req,
	}
}
