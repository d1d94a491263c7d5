package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/visitrack/internal/device"
	"github.com/dmitrymomot/visitrack/internal/geo"
	"github.com/dmitrymomot/visitrack/internal/notify"
	"github.com/dmitrymomot/visitrack/internal/session"
	"github.com/dmitrymomot/visitrack/internal/visitor"
	"github.com/dmitrymomot/visitrack/pkg/async"
	"github.com/dmitrymomot/visitrack/pkg/clientip"
	"github.com/dmitrymomot/visitrack/pkg/logger"
)

// Resolver is the geo lookup surface the handler needs.
type Resolver interface {
	Resolve(ctx context.Context, addr string) geo.Info
}

// Tracker classifies visitor observations.
type Tracker interface {
	Classify(ctx context.Context, identity string, now time.Time) (visitor.Classification, error)
}

// Dispatcher fans visit events out to sinks.
type Dispatcher interface {
	Dispatch(ctx context.Context, rec notify.Record)
}

// Handler serves the tracking endpoint. Every collaborator failure is
// contained: geo degradation, store errors and sink errors all still
// produce a 200 response.
type Handler struct {
	tracker    Tracker
	resolver   Resolver
	dispatcher Dispatcher
	log        *slog.Logger
	now        func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// New creates the tracking handler.
func New(tracker Tracker, resolver Resolver, dispatcher Dispatcher, opts ...Option) *Handler {
	h := &Handler{
		tracker:    tracker,
		resolver:   resolver,
		dispatcher: dispatcher,
		log:        slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// trackResponse is the data part of the tracking envelope.
type trackResponse struct {
	EventID   string          `json:"eventId"`
	Timestamp time.Time       `json:"timestamp"`
	Tracking  notify.Tracking `json:"tracking"`
	Geo       geo.Info        `json:"geo"`
	Device    device.Info     `json:"device"`
	Session   session.Info    `json:"session"`
}

// Track handles GET and POST /api/track.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	ip := clientip.GetIPFromContext(r.Context())
	if ip == "" {
		ip = clientip.GetIP(r)
	}
	ua := r.UserAgent()

	// Geo lookup runs concurrently with classification and parsing;
	// the resolver degrades internally and never returns an error.
	geoFuture := async.Async(r.Context(), ip, func(ctx context.Context, addr string) (geo.Info, error) {
		return h.resolver.Resolve(ctx, addr), nil
	})

	identity := visitor.Identity(ip, ua)
	cls, err := h.tracker.Classify(r.Context(), identity, now)
	if err != nil {
		// Classification is degraded to a returning visit so a store
		// outage cannot flood the sinks with false uniques.
		h.log.ErrorContext(r.Context(), "visit classification failed",
			logger.Component("handler"),
			logger.Visitor(identity),
			logger.Error(err))
		cls = visitor.Classification{FirstVisit: now, LastVisit: now}
	}

	dev := device.Parse(ua)
	sess := session.Analyze(r, cls)
	geoInfo, _ := geoFuture.Await()

	rec := notify.NewRecord(now, cls, geoInfo, dev, sess, notify.Request{
		IP:       ip,
		Method:   r.Method,
		Path:     requestPath(r),
		Host:     r.Host,
		Referrer: r.Referer(),
	})

	// Fire and forget; sink failures are logged inside the fanout.
	h.dispatcher.Dispatch(r.Context(), rec)

	h.log.InfoContext(r.Context(), "visit tracked",
		logger.Component("handler"),
		logger.Visitor(sess.VisitorHash),
		slog.Bool("unique", cls.IsUnique),
		slog.Int64("visit_count", cls.VisitCount),
		slog.String("country", geoInfo.Country))

	respondOK(w, trackResponse{
		EventID:   rec.EventID,
		Timestamp: rec.Timestamp,
		Tracking:  rec.Tracking,
		Geo:       geoInfo,
		Device:    dev,
		Session:   sess,
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondOK(w, map[string]string{"status": "ok"})
}

// requestPath prefers the page path reported by the tracking snippet
// over the endpoint path itself.
func requestPath(r *http.Request) string {
	if p := r.URL.Query().Get("page"); p != "" {
		return p
	}
	return r.URL.Path
}
