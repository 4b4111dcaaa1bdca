package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/twnotify/internal/metrics"
	"github.com/ariel-frischer/twnotify/internal/tracker"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type staticSource struct {
	tr *tracker.Tracker
}

func (s staticSource) Tracker() *tracker.Tracker { return s.tr }

func newTracker() *tracker.Tracker {
	tr := tracker.New("alice", "bob", "carol")
	tr.Observe("bob", nil)
	return tr
}

func TestHealth(t *testing.T) {
	t.Parallel()

	r := NewRouter(staticSource{}, discard, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestStreams(t *testing.T) {
	t.Parallel()

	r := NewRouter(staticSource{tr: newTracker()}, discard, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/streams", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"followed": 3,
		"live": 2,
		"channels": {"alice": "live", "bob": "offline", "carol": "live"}
	}`, rec.Body.String())
}

func TestStreams_NotLoaded(t *testing.T) {
	t.Parallel()

	r := NewRouter(staticSource{}, discard, nil)

	for _, path := range []string{"/streams", "/streams/alice"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestChannel(t *testing.T) {
	t.Parallel()

	r := NewRouter(staticSource{tr: newTracker()}, discard, nil)

	tests := map[string]struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		"live":      {path: "/streams/alice", wantStatus: http.StatusOK, wantBody: `{"channel":"alice","state":"live"}`},
		"offline":   {path: "/streams/bob", wantStatus: http.StatusOK, wantBody: `{"channel":"bob","state":"offline"}`},
		"untracked": {path: "/streams/mallory", wantStatus: http.StatusNotFound, wantBody: `{"error":"channel not followed"}`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	r := NewRouter(staticSource{tr: newTracker()}, discard, m)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "twnotify_followed_channels 3")
	assert.Contains(t, body, `twnotify_http_errors_total{route="unmatched"} 1`)
}

func TestMetricsEndpoint_AbsentWithoutMetrics(t *testing.T) {
	t.Parallel()

	r := NewRouter(staticSource{}, discard, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(ln.Addr().String(), NewRouter(staticSource{tr: newTracker()}, discard, nil), discard)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/streams")
	require.NoError(t, err)
	var body StreamsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	_ = resp.Body.Close()
	assert.Equal(t, 3, body.Followed)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
