package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend bool

func (f fakeBackend) Available() bool { return bool(f) }

func TestCheckNotifications(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		backend Backend
		initErr error
		want    bool
		wantMsg string
	}{
		"available":   {backend: fakeBackend(true), want: true, wantMsg: "reachable"},
		"unavailable": {backend: fakeBackend(false), want: false, wantMsg: "unavailable"},
		"nil backend": {backend: nil, want: false, wantMsg: "unavailable"},
		"init error":  {initErr: errors.New("no session bus"), want: false, wantMsg: "no session bus"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := CheckNotifications(tt.backend, tt.initErr)
			assert.Equal(t, tt.want, got.Passed)
			assert.Contains(t, got.Message, tt.wantMsg)
		})
	}
}

func TestCheckAPI(t *testing.T) {
	t.Parallel()

	status := map[string]int{"/ok/": http.StatusOK, "/gone/": http.StatusGone, "/broken/": http.StatusBadGateway}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status[r.URL.Path])
	}))
	t.Cleanup(srv.Close)

	tests := map[string]struct {
		base string
		want bool
	}{
		"200 reachable":       {base: srv.URL + "/ok", want: true},
		"410 still reachable": {base: srv.URL + "/gone/", want: true},
		"502 fails":           {base: srv.URL + "/broken", want: false},
		"connection refused":  {base: "http://127.0.0.1:1", want: false},
		"malformed URL":       {base: "://", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := CheckAPI(context.Background(), srv.Client(), tt.base)
			assert.Equal(t, tt.want, got.Passed, got.Message)
			assert.Equal(t, "Stream API", got.Name)
		})
	}
}

func TestCheckLogFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.True(t, CheckLogFile(filepath.Join(dir, "ok.log")).Passed)
	assert.False(t, CheckLogFile(filepath.Join(dir, "missing", "x.log")).Passed)
}

func TestRunHealthChecks(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	t.Cleanup(srv.Close)

	report := RunHealthChecks(context.Background(), Options{
		Backend:    fakeBackend(true),
		APIBaseURL: srv.URL,
		HTTPClient: srv.Client(),
	})
	require.Len(t, report.Checks, 2, "log file check skipped without a path")
	assert.True(t, report.Passed)

	report = RunHealthChecks(context.Background(), Options{
		Backend:    fakeBackend(false),
		APIBaseURL: srv.URL,
		HTTPClient: srv.Client(),
		LogFile:    filepath.Join(t.TempDir(), "twnotify.log"),
	})
	require.Len(t, report.Checks, 3)
	assert.False(t, report.Passed)
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	report := &HealthReport{}
	report.Add(CheckResult{Name: "Stream API", Passed: true, Message: "API reachable at http://x"})
	report.Add(CheckResult{Name: "Log file", Passed: false, Message: "log not appendable"})

	assert.Equal(t, "✓ Stream API: API reachable at http://x\n✗ Error: log not appendable\n", FormatReport(report))
}
