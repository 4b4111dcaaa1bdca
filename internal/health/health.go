// Package health runs the doctor checks: notification backend, upstream API
// reachability and log file access.
package health

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ariel-frischer/twnotify/internal/config"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Add appends a result and folds it into Passed
func (r *HealthReport) Add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// Backend reports whether a notification backend is usable.
type Backend interface {
	Available() bool
}

// Options selects what RunHealthChecks inspects.
type Options struct {
	// Backend is the notification sender; nil means it failed to initialise
	Backend Backend
	// BackendErr is the initialisation error, if any
	BackendErr error
	// APIBaseURL is checked with a GET
	APIBaseURL string
	// HTTPClient performs the check (default http.DefaultClient)
	HTTPClient *http.Client
	// LogFile is checked for append access when set
	LogFile string
}

// RunHealthChecks runs all health checks and returns a report
func RunHealthChecks(ctx context.Context, opts Options) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 3),
		Passed: true,
	}

	report.Add(CheckNotifications(opts.Backend, opts.BackendErr))
	report.Add(CheckAPI(ctx, opts.HTTPClient, opts.APIBaseURL))
	if opts.LogFile != "" {
		report.Add(CheckLogFile(opts.LogFile))
	}

	return report
}

// CheckNotifications checks that the notification backend initialised
func CheckNotifications(b Backend, initErr error) CheckResult {
	const name = "Notification service"
	if initErr != nil {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("notification service unavailable: %v", initErr)}
	}
	if b == nil || !b.Available() {
		return CheckResult{Name: name, Passed: false, Message: "notification service unavailable"}
	}
	return CheckResult{Name: name, Passed: true, Message: "notification service reachable"}
}

// CheckAPI checks that the upstream API answers at all; any response below
// 500 counts as reachable.
func CheckAPI(ctx context.Context, client *http.Client, baseURL string) CheckResult {
	const name = "Stream API"
	if client == nil {
		client = http.DefaultClient
	}
	url := strings.TrimRight(baseURL, "/") + "/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("invalid API URL %q: %v", baseURL, err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("API unreachable at %s: %v", baseURL, err)}
	}
	resp.Body.Close()

	if resp.StatusCode >= 500 {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("API at %s returned %d", baseURL, resp.StatusCode)}
	}
	return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("API reachable at %s", baseURL)}
}

// CheckLogFile checks that the log file can be appended to
func CheckLogFile(path string) CheckResult {
	const name = "Log file"
	if err := config.CheckLogFile(path); err != nil {
		return CheckResult{Name: name, Passed: false, Message: err.Error()}
	}
	return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("%s is appendable", path)}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var b strings.Builder
	for _, check := range report.Checks {
		if check.Passed {
			fmt.Fprintf(&b, "✓ %s: %s\n", check.Name, check.Message)
		} else {
			fmt.Fprintf(&b, "✗ Error: %s\n", check.Message)
		}
	}
	return b.String()
}
