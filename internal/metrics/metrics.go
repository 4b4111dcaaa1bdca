// Package metrics exposes Prometheus counters and gauges for the poll loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the daemon.
type Metrics struct {
	registry           *prometheus.Registry
	pollsTotal         prometheus.Counter
	notificationsTotal prometheus.Counter
	pollErrorsTotal    prometheus.Counter
	restartsTotal      prometheus.Counter
	requestsTotal      *prometheus.CounterVec
	requestErrorsTotal *prometheus.CounterVec
	followedChannels   prometheus.Gauge
	liveChannels       prometheus.Gauge
	pollDuration       prometheus.Histogram
}

// New creates and registers Prometheus metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		pollsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "twnotify_polls_total",
			Help: "Total number of completed poll cycles",
		}),
		notificationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "twnotify_notifications_total",
			Help: "Total number of went-live notifications raised",
		}),
		pollErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "twnotify_poll_errors_total",
			Help: "Total number of poll loop failures",
		}),
		restartsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "twnotify_restarts_total",
			Help: "Total number of poll loop restarts",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "twnotify_http_requests_total",
			Help: "Total number of requests to the status server, by route",
		}, []string{"route"}),
		requestErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "twnotify_http_errors_total",
			Help: "Total number of status server responses with error status (4xx or 5xx), by route",
		}, []string{"route"}),
		followedChannels: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "twnotify_followed_channels",
			Help: "Number of channels being tracked",
		}),
		liveChannels: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "twnotify_live_channels",
			Help: "Number of tracked channels live at the last poll",
		}),
		pollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "twnotify_poll_duration_seconds",
			Help:    "Duration of one status fetch",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.pollsTotal,
		m.notificationsTotal,
		m.pollErrorsTotal,
		m.restartsTotal,
		m.requestsTotal,
		m.requestErrorsTotal,
		m.followedChannels,
		m.liveChannels,
		m.pollDuration,
	)

	return m
}

// IncPolls increments the completed poll counter.
func (m *Metrics) IncPolls() {
	m.pollsTotal.Inc()
}

// IncNotifications increments the notification counter.
func (m *Metrics) IncNotifications() {
	m.notificationsTotal.Inc()
}

// IncPollErrors increments the poll failure counter.
func (m *Metrics) IncPollErrors() {
	m.pollErrorsTotal.Inc()
}

// IncRestarts increments the restart counter.
func (m *Metrics) IncRestarts() {
	m.restartsTotal.Inc()
}

// ObserveRequest counts one status server response for route. A zero
// status means nothing was written and counts as 200.
func (m *Metrics) ObserveRequest(route string, status int) {
	m.requestsTotal.WithLabelValues(route).Inc()
	if status >= 400 {
		m.requestErrorsTotal.WithLabelValues(route).Inc()
	}
}

// SetFollowed sets the followed channels gauge.
func (m *Metrics) SetFollowed(n int) {
	m.followedChannels.Set(float64(n))
}

// SetLive sets the live channels gauge.
func (m *Metrics) SetLive(n int) {
	m.liveChannels.Set(float64(n))
}

// ObservePollDuration records how long one fetch took, in seconds.
func (m *Metrics) ObservePollDuration(seconds float64) {
	m.pollDuration.Observe(seconds)
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
