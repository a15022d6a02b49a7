package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes engine counters and histograms on the prometheus registry.
type Metrics struct {
	AssignmentsCreated *prometheus.CounterVec
	AssignmentSkips    *prometheus.CounterVec
	CommitRetries      prometheus.Counter
	ContentionTotal    prometheus.Counter
	ConflictsDetected  prometheus.Counter
	ShiftsMaterialized prometheus.Counter
	PayrollItems       *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	ErrorsTotal        *prometheus.CounterVec
}

// RecordError counts one failed request by error code.
func (m *Metrics) RecordError(path, method, code string) {
	m.ErrorsTotal.WithLabelValues(method, path, code).Inc()
}

// NewMetrics builds and registers all collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AssignmentsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staffing_assignments_created_total",
				Help: "Assignments created, by mode (auto or manual).",
			},
			[]string{"mode"},
		),
		AssignmentSkips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staffing_assignment_skips_total",
				Help: "Candidates skipped during auto-assign, by reason.",
			},
			[]string{"reason"},
		),
		CommitRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "staffing_commit_retries_total",
			Help: "Optimistic commit retries across all role slots.",
		}),
		ContentionTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "staffing_contention_total",
			Help: "Role-slot commits abandoned after exhausting the retry budget.",
		}),
		ConflictsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "staffing_conflicts_detected_total",
			Help: "Schedule conflicts reported by the conflict detector.",
		}),
		ShiftsMaterialized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "staffing_shifts_materialized_total",
			Help: "Shifts created from approved assignments.",
		}),
		PayrollItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staffing_payroll_items_total",
				Help: "Payroll items derived, by review flag.",
			},
			[]string{"review"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_request_errors_total",
				Help: "Failed HTTP requests, by error code.",
			},
			[]string{"method", "path", "code"},
		),
	}

	reg.MustRegister(
		m.AssignmentsCreated,
		m.AssignmentSkips,
		m.CommitRetries,
		m.ContentionTotal,
		m.ConflictsDetected,
		m.ShiftsMaterialized,
		m.PayrollItems,
		m.HTTPRequests,
		m.HTTPDuration,
		m.ErrorsTotal,
	)
	return m
}

// NewTestMetrics builds metrics on a private registry for tests.
func NewTestMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
