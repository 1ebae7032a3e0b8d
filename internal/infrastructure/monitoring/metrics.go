package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds all Prometheus metrics.
// All Record/Set methods are safe to call on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics (admin server)
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Job metrics
	JobRuns        *prometheus.CounterVec
	JobDuration    *prometheus.HistogramVec
	JobLastSuccess *prometheus.GaugeVec

	// Pipeline metrics
	BotsDiscovered prometheus.Counter
	RegistryWrites *prometheus.CounterVec
	AlarmUpserts   *prometheus.CounterVec
	BotsSkipped    *prometheus.CounterVec

	// External call metrics
	CallsTotal   *prometheus.CounterVec
	CallDuration *prometheus.HistogramVec
	BreakerState *prometheus.GaugeVec
}

// NewMetrics creates a metrics collector on a fresh registry that also
// carries the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewMetricsWith(reg)
}

// NewMetricsWith creates a metrics collector registered on reg.
func NewMetricsWith(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "botsync_http_requests_total",
				Help: "Total number of admin HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "botsync_http_request_duration_seconds",
				Help:    "Admin HTTP request duration in seconds",
				Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 30, 120},
			},
			[]string{"method", "path"},
		),

		// Job metrics
		JobRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "botsync_job_runs_total",
				Help: "Total number of job runs",
			},
			[]string{"job", "status"},
		),
		JobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "botsync_job_duration_seconds",
				Help:    "Job run duration in seconds",
				Buckets: []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300, 900},
			},
			[]string{"job"},
		),
		JobLastSuccess: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "botsync_job_last_success_timestamp_seconds",
				Help: "Unix time of the last successful job run",
			},
			[]string{"job"},
		),

		// Pipeline metrics
		BotsDiscovered: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "botsync_bots_discovered_total",
				Help: "Total number of bots discovered with a production alias",
			},
		),
		RegistryWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "botsync_registry_writes_total",
				Help: "Total number of registry entry writes",
			},
			[]string{"field", "status"},
		),
		AlarmUpserts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "botsync_alarm_upserts_total",
				Help: "Total number of alarm upserts",
			},
			[]string{"status"},
		),
		BotsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "botsync_bots_skipped_total",
				Help: "Total number of bots skipped by a job",
			},
			[]string{"job", "reason"},
		),

		// External call metrics
		CallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "botsync_external_calls_total",
				Help: "Total number of calls to external services",
			},
			[]string{"client", "operation", "status"},
		),
		CallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "botsync_external_call_duration_seconds",
				Help:    "External call duration in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"client", "operation"},
		),
		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "botsync_breaker_state",
				Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"breaker"},
		),
	}
}

// Registry returns the registry backing these metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordHTTPRequest records an admin HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordJobRun records a finished job run
func (m *Metrics) RecordJobRun(job string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	} else {
		m.JobLastSuccess.WithLabelValues(job).SetToCurrentTime()
	}
	m.JobRuns.WithLabelValues(job, status).Inc()
	m.JobDuration.WithLabelValues(job).Observe(duration.Seconds())
}

// IncBotsDiscovered increments the discovered bots counter
func (m *Metrics) IncBotsDiscovered() {
	if m == nil {
		return
	}
	m.BotsDiscovered.Inc()
}

// RecordRegistryWrite records one registry entry write
func (m *Metrics) RecordRegistryWrite(field string, err error) {
	if m == nil {
		return
	}
	m.RegistryWrites.WithLabelValues(field, statusOf(err)).Inc()
}

// RecordAlarmUpsert records one alarm upsert
func (m *Metrics) RecordAlarmUpsert(err error) {
	if m == nil {
		return
	}
	m.AlarmUpserts.WithLabelValues(statusOf(err)).Inc()
}

// RecordSkip records a bot skipped by a job
func (m *Metrics) RecordSkip(job, reason string) {
	if m == nil {
		return
	}
	m.BotsSkipped.WithLabelValues(job, reason).Inc()
}

// RecordCall records an external service call
func (m *Metrics) RecordCall(client, operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.CallsTotal.WithLabelValues(client, operation, statusOf(err)).Inc()
	m.CallDuration.WithLabelValues(client, operation).Observe(duration.Seconds())
}

// SetBreakerState sets the breaker state gauge
func (m *Metrics) SetBreakerState(breaker string, state int) {
	if m == nil {
		return
	}
	m.BreakerState.WithLabelValues(breaker).Set(float64(state))
}

// Push sends every metric to a Pushgateway under the given job name.
// Jobs are short-lived, so this runs once at the end of each CLI invocation.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if m == nil || url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
