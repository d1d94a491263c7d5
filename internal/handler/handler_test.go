package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitrack/internal/geo"
	"github.com/dmitrymomot/visitrack/internal/handler"
	"github.com/dmitrymomot/visitrack/internal/notify"
	"github.com/dmitrymomot/visitrack/internal/visitor"
)

type stubResolver struct {
	info geo.Info
}

func (s stubResolver) Resolve(context.Context, string) geo.Info { return s.info }

type failingTracker struct{}

func (failingTracker) Classify(context.Context, string, time.Time) (visitor.Classification, error) {
	return visitor.Classification{}, errors.New("store down")
}

type recordingDispatcher struct {
	mu   sync.Mutex
	recs []notify.Record
}

func (d *recordingDispatcher) Dispatch(_ context.Context, rec notify.Record) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recs = append(d.recs, rec)
}

func (d *recordingDispatcher) records() []notify.Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]notify.Record(nil), d.recs...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, tracker handler.Tracker, resolver handler.Resolver, dispatcher handler.Dispatcher) http.Handler {
	t.Helper()
	h := handler.New(tracker, resolver, dispatcher, handler.WithLogger(testLogger()))
	return handler.Router(h, testLogger())
}

func memoryTracker() *visitor.Tracker {
	store := visitor.NewMemoryStore(1000, 2*time.Hour)
	return visitor.NewTracker(store, 30*time.Minute)
}

type trackEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    struct {
		EventID  string `json:"eventId"`
		Tracking struct {
			IsUnique   bool  `json:"isUnique"`
			VisitCount int64 `json:"visitCount"`
		} `json:"tracking"`
		Geo struct {
			Country string `json:"country"`
			Error   string `json:"error"`
		} `json:"geo"`
		Device struct {
			Device string `json:"device"`
			OS     string `json:"os"`
		} `json:"device"`
		Session struct {
			Fingerprint string `json:"fingerprint"`
			SessionType string `json:"sessionType"`
			TrustLevel  string `json:"trustLevel"`
		} `json:"session"`
	} `json:"data"`
}

func doTrack(t *testing.T, srv http.Handler, mutate func(*http.Request)) (*httptest.ResponseRecorder, trackEnvelope) {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/api/track", nil)
	r.RemoteAddr = "203.0.113.5:41000"
	r.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	if mutate != nil {
		mutate(r)
	}

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	var env trackEnvelope
	if w.Code == http.StatusOK || w.Code == http.StatusInternalServerError {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestTrack(t *testing.T) {
	resolver := stubResolver{info: geo.Info{Country: "Germany", CountryCode: "DE", Flag: "🇩🇪"}}

	t.Run("first visit is unique", func(t *testing.T) {
		dispatcher := &recordingDispatcher{}
		srv := newTestServer(t, memoryTracker(), resolver, dispatcher)

		w, env := doTrack(t, srv, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		assert.True(t, env.Data.Tracking.IsUnique)
		assert.EqualValues(t, 1, env.Data.Tracking.VisitCount)
		assert.Equal(t, "Germany", env.Data.Geo.Country)
		assert.Equal(t, "desktop", env.Data.Device.Device)
		assert.Equal(t, "new", env.Data.Session.SessionType)
		assert.NotEmpty(t, env.Data.EventID)
		assert.Len(t, dispatcher.records(), 1)
	})

	t.Run("repeat visit inside the window is returning", func(t *testing.T) {
		dispatcher := &recordingDispatcher{}
		srv := newTestServer(t, memoryTracker(), resolver, dispatcher)

		_, first := doTrack(t, srv, nil)
		_, second := doTrack(t, srv, nil)

		assert.True(t, first.Data.Tracking.IsUnique)
		assert.False(t, second.Data.Tracking.IsUnique)
		assert.EqualValues(t, 1, second.Data.Tracking.VisitCount)
		assert.Equal(t, "returning", second.Data.Session.SessionType)
	})

	t.Run("different address is an independent visitor", func(t *testing.T) {
		srv := newTestServer(t, memoryTracker(), resolver, &recordingDispatcher{})

		_, first := doTrack(t, srv, nil)
		_, second := doTrack(t, srv, func(r *http.Request) {
			r.RemoteAddr = "203.0.113.77:41000"
		})

		assert.True(t, first.Data.Tracking.IsUnique)
		assert.True(t, second.Data.Tracking.IsUnique)
	})

	t.Run("proxy header wins over the remote address", func(t *testing.T) {
		dispatcher := &recordingDispatcher{}
		srv := newTestServer(t, memoryTracker(), resolver, dispatcher)

		doTrack(t, srv, func(r *http.Request) {
			r.RemoteAddr = "10.0.0.1:9999"
			r.Header.Set("X-Forwarded-For", "198.51.100.23, 10.0.0.1")
		})

		recs := dispatcher.records()
		require.Len(t, recs, 1)
		assert.Equal(t, "198.51.100.23", recs[0].Request.IP)
	})

	t.Run("geo degradation still answers 200", func(t *testing.T) {
		degraded := stubResolver{info: geo.Info{
			Country: geo.Unknown,
			Flag:    geo.FlagUnknown,
			Error:   "all geolocation providers failed",
		}}
		srv := newTestServer(t, memoryTracker(), degraded, &recordingDispatcher{})

		w, env := doTrack(t, srv, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		assert.Equal(t, geo.Unknown, env.Data.Geo.Country)
		assert.Equal(t, "all geolocation providers failed", env.Data.Geo.Error)
	})

	t.Run("store failure degrades to a returning visit", func(t *testing.T) {
		dispatcher := &recordingDispatcher{}
		srv := newTestServer(t, failingTracker{}, resolver, dispatcher)

		w, env := doTrack(t, srv, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		assert.False(t, env.Data.Tracking.IsUnique)
		assert.Len(t, dispatcher.records(), 1, "the event is still dispatched")
	})

	t.Run("post is accepted", func(t *testing.T) {
		srv := newTestServer(t, memoryTracker(), resolver, &recordingDispatcher{})

		r := httptest.NewRequest(http.MethodPost, "/api/track", nil)
		r.RemoteAddr = "203.0.113.5:41000"
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("page query parameter overrides the path", func(t *testing.T) {
		dispatcher := &recordingDispatcher{}
		srv := newTestServer(t, memoryTracker(), resolver, dispatcher)

		doTrack(t, srv, func(r *http.Request) {
			r.URL.RawQuery = "page=/pricing"
		})

		recs := dispatcher.records()
		require.Len(t, recs, 1)
		assert.Equal(t, "/pricing", recs[0].Request.Path)
	})
}

func TestRouter(t *testing.T) {
	resolver := stubResolver{}

	t.Run("preflight answers 204 with cors headers", func(t *testing.T) {
		srv := newTestServer(t, memoryTracker(), resolver, &recordingDispatcher{})

		r := httptest.NewRequest(http.MethodOptions, "/api/track", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("cors header is present on tracking responses", func(t *testing.T) {
		srv := newTestServer(t, memoryTracker(), resolver, &recordingDispatcher{})

		w, _ := doTrack(t, srv, nil)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("health probe", func(t *testing.T) {
		srv := newTestServer(t, memoryTracker(), resolver, &recordingDispatcher{})

		r := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":{"status":"ok"}}`, w.Body.String())
	})

	t.Run("unknown route answers a json 404", func(t *testing.T) {
		srv := newTestServer(t, memoryTracker(), resolver, &recordingDispatcher{})

		r := httptest.NewRequest(http.MethodGet, "/nope", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"not found"}`, w.Body.String())
	})

	t.Run("panic in a sink dispatcher becomes a json 500", func(t *testing.T) {
		h := handler.New(memoryTracker(), resolver, panickingDispatcher{}, handler.WithLogger(testLogger()))
		srv := handler.Router(h, testLogger())

		w, env := doTrack(t, srv, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "internal server error", env.Error)
	})
}

type panickingDispatcher struct{}

func (panickingDispatcher) Dispatch(context.Context, notify.Record) { panic("dispatcher exploded") }
