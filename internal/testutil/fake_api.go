package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ariel-frischer/twnotify/internal/twitch"
)

// CallRecord records a single request served by a FakeAPI.
type CallRecord struct {
	Method    string
	Path      string
	Query     url.Values
	Header    http.Header
	Timestamp time.Time
}

// FakeAPIBuilder provides a fluent API for configuring a fake stream API.
type FakeAPIBuilder struct {
	t          *testing.T
	follows    []twitch.Follow
	live       map[string]twitch.Stream
	failStatus int
	failPrefix string
}

// NewFakeAPIBuilder creates a builder for a fake API with no follows and
// nothing live.
func NewFakeAPIBuilder(t *testing.T) *FakeAPIBuilder {
	t.Helper()

	return &FakeAPIBuilder{
		t:    t,
		live: make(map[string]twitch.Stream),
	}
}

// WithFollows appends channels, by name, to the follow list.
func (b *FakeAPIBuilder) WithFollows(names ...string) *FakeAPIBuilder {
	for _, name := range names {
		b.follows = append(b.follows, twitch.Follow{Channel: twitch.Channel{Name: name}})
	}
	return b
}

// WithLive marks streams as live.
func (b *FakeAPIBuilder) WithLive(streams ...twitch.Stream) *FakeAPIBuilder {
	for _, s := range streams {
		b.live[s.Name()] = s
	}
	return b
}

// WithFailure answers every request whose path starts with prefix with
// status. An empty prefix fails everything.
func (b *FakeAPIBuilder) WithFailure(prefix string, status int) *FakeAPIBuilder {
	b.failPrefix = prefix
	b.failStatus = status
	return b
}

// Build starts the fake server; it is closed when the test ends.
func (b *FakeAPIBuilder) Build() *FakeAPI {
	b.t.Helper()

	api := &FakeAPI{builder: b}
	api.server = httptest.NewServer(api)
	b.t.Cleanup(api.server.Close)
	return api
}

// FakeAPI serves the follow and stream endpoints from canned data and
// records every request.
type FakeAPI struct {
	builder *FakeAPIBuilder
	server  *httptest.Server

	mu    sync.Mutex
	calls []CallRecord
}

// URL returns the base URL to configure clients with.
func (f *FakeAPI) URL() string {
	return f.server.URL
}

func (f *FakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, CallRecord{
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.Query(),
		Header:    r.Header.Clone(),
		Timestamp: time.Now(),
	})
	f.mu.Unlock()

	b := f.builder
	if b.failStatus != 0 && strings.HasPrefix(r.URL.Path, b.failPrefix) {
		http.Error(w, "upstream broke", b.failStatus)
		return
	}

	switch {
	case r.URL.Path == "/":
		writeJSON(w, map[string]interface{}{})
	case strings.HasPrefix(r.URL.Path, "/users/"):
		writeJSON(w, map[string]interface{}{
			"follows": f.page(r.URL.Query()),
			"_total":  len(b.follows),
		})
	case r.URL.Path == "/streams/":
		streams := []twitch.Stream{}
		for _, name := range strings.Split(r.URL.Query().Get("channel"), ",") {
			if s, ok := b.live[name]; ok {
				streams = append(streams, s)
			}
		}
		writeJSON(w, map[string]interface{}{"streams": streams})
	case strings.HasPrefix(r.URL.Path, "/streams/"):
		if s, ok := b.live[strings.TrimPrefix(r.URL.Path, "/streams/")]; ok {
			writeJSON(w, map[string]interface{}{"stream": s})
			return
		}
		writeJSON(w, map[string]interface{}{"stream": nil})
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeAPI) page(q url.Values) []twitch.Follow {
	follows := f.builder.follows
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = len(follows)
	}
	if offset >= len(follows) {
		return []twitch.Follow{}
	}
	end := offset + limit
	if end > len(follows) {
		end = len(follows)
	}
	return follows[offset:end]
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// GetCalls returns a copy of all recorded requests.
func (f *FakeAPI) GetCalls() []CallRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	calls := make([]CallRecord, len(f.calls))
	copy(calls, f.calls)
	return calls
}

// Paths returns the request paths in arrival order.
func (f *FakeAPI) Paths() []string {
	calls := f.GetCalls()
	paths := make([]string, len(calls))
	for i, c := range calls {
		paths[i] = c.Path
	}
	return paths
}

// GetCallCount returns the total number of requests.
func (f *FakeAPI) GetCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// AssertCallCount verifies the number of requests whose path starts with prefix.
func (f *FakeAPI) AssertCallCount(t *testing.T, prefix string, expected int) {
	t.Helper()

	n := 0
	for _, p := range f.Paths() {
		if strings.HasPrefix(p, prefix) {
			n++
		}
	}
	if n != expected {
		t.Errorf("expected %d requests to %s*, got %d", expected, prefix, n)
	}
}

// AssertNotCalled verifies that no request path started with prefix.
func (f *FakeAPI) AssertNotCalled(t *testing.T, prefix string) {
	t.Helper()
	f.AssertCallCount(t, prefix, 0)
}
