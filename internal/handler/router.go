package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/visitrack/pkg/clientip"
)

// Router assembles the HTTP surface: the tracking endpoint, a health
// probe, permissive CORS for the snippet, and panic recovery.
func Router(h *Handler, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(recoverer(log))
	r.Use(cors)
	r.Use(clientip.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/track", h.Track)
		r.Post("/track", h.Track)
		r.Options("/track", func(http.ResponseWriter, *http.Request) {}) // answered by the cors middleware
	})
	r.Get("/health", h.Health)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
