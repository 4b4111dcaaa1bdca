package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ariel-frischer/twnotify/internal/logger"
	"github.com/ariel-frischer/twnotify/internal/metrics"
	"github.com/ariel-frischer/twnotify/internal/tracker"
)

// TrackerSource yields the tracker of the running poll loop, nil until the
// follow list has loaded.
type TrackerSource interface {
	Tracker() *tracker.Tracker
}

// StreamsResponse is the body of GET /streams.
type StreamsResponse struct {
	Followed int                      `json:"followed"`
	Live     int                      `json:"live"`
	Channels map[string]tracker.State `json:"channels"`
}

// ChannelResponse is the body of GET /streams/{channel}.
type ChannelResponse struct {
	Channel string        `json:"channel"`
	State   tracker.State `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler exposes status endpoints using go-chi.
type Handler struct {
	src     TrackerSource
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewRouter mounts /healthz, /streams, /streams/{channel} and, when m is
// not nil, /metrics.
func NewRouter(src TrackerSource, log *slog.Logger, m *metrics.Metrics) chi.Router {
	h := &Handler{src: src, log: log, metrics: m}

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	if m != nil {
		r.Use(metrics.RequestMiddleware(m))
		r.Get("/metrics", m.Handler(h.refreshGauges).ServeHTTP)
	}
	r.Get("/healthz", h.Health)
	r.Route("/streams", func(r chi.Router) {
		r.Get("/", h.Streams)
		r.Get("/{channel}", h.Channel)
	})
	return r
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// Streams handles GET /streams.
func (h *Handler) Streams(w http.ResponseWriter, _ *http.Request) {
	tr := h.src.Tracker()
	if tr == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "follow list not loaded yet"})
		return
	}
	h.writeJSON(w, http.StatusOK, StreamsResponse{
		Followed: tr.Len(),
		Live:     tr.Count(tracker.Live),
		Channels: tr.Snapshot(),
	})
}

// Channel handles GET /streams/{channel}.
func (h *Handler) Channel(w http.ResponseWriter, r *http.Request) {
	tr := h.src.Tracker()
	if tr == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "follow list not loaded yet"})
		return
	}
	name := chi.URLParam(r, "channel")
	state, ok := tr.State(name)
	if !ok {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "channel not followed"})
		return
	}
	h.writeJSON(w, http.StatusOK, ChannelResponse{Channel: name, State: state})
}

func (h *Handler) refreshGauges() {
	if tr := h.src.Tracker(); tr != nil {
		h.metrics.SetFollowed(tr.Len())
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Debug("encoding response", slog.String("error", err.Error()))
	}
}
