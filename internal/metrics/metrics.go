// Package metrics provides Prometheus metrics for the frontend-forge
// controller. Exemplars link reconcile/build histograms back to their OTEL
// trace (Prometheus -> Tempo) when tracing is enabled.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	namespace = "frontend_forge"
	subsystem = "controller"
)

var (
	// ReconcileTotal counts total reconciliations by phase and result.
	ReconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reconcile_total",
			Help:      "Total number of reconciliations by phase and result",
		},
		[]string{"phase", "result"},
	)

	// ReconcileDuration measures reconcile latency.
	ReconcileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconciliations in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"phase"},
	)

	// FrontendIntegrationsTotal tracks the current count of FrontendIntegration
	// resources by phase.
	FrontendIntegrationsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frontendintegrations_total",
			Help:      "Current number of FrontendIntegration resources by phase",
		},
		[]string{"phase"},
	)

	// BuildJobsActive tracks active build Jobs.
	BuildJobsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "build_jobs_active",
			Help:      "Number of build Jobs currently Active",
		},
	)

	// BuildDuration measures build-service round-trip time as observed by the
	// runner (submit manifest, wait for build artifacts).
	BuildDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "build_duration_seconds",
			Help:      "Duration of build-service round trips in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600, 900},
		},
		[]string{"result"},
	)

	// APIServerRequestsTotal counts API server interactions made by the
	// controller beyond its informer-backed watches (direct Get/Create/Update
	// calls against Jobs, Secrets, and JSBundles).
	APIServerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "apiserver_requests_total",
			Help:      "Total API server requests by verb and resource",
		},
		[]string{"verb", "resource", "result"},
	)

	// WorkQueueDepth tracks the controller's reconcile queue depth.
	WorkQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workqueue_depth",
			Help:      "Current depth of the reconcile work queue",
		},
	)

	// WorkQueueLatency tracks time items spend in the reconcile queue.
	WorkQueueLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workqueue_latency_seconds",
			Help:      "Time items spend in the reconcile work queue",
			Buckets:   []float64{.001, .01, .1, 1, 10, 60, 300},
		},
	)

	// ErrorsTotal counts errors by component and type.
	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Total errors by type and component",
		},
		[]string{"component", "error_type"},
	)

	// LifecycleEventsTotal counts CloudEvents emitted by the controller, by
	// event type and whether the broker POST succeeded.
	LifecycleEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "lifecycle_events_total",
			Help:      "Total number of lifecycle CloudEvents emitted, by type and result",
		},
		[]string{"event_type", "result"},
	)

	// StaleCheckOutcomesTotal counts how the runner's staleCheck poll loop
	// resolved: current (build still wanted), stale (a newer build
	// superseded it), or timeout (status never caught up).
	StaleCheckOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "stale_check_outcomes_total",
			Help:      "Total number of runner stale-check poll outcomes",
		},
		[]string{"outcome"},
	)
)

// Register registers all metrics with the controller-runtime metrics registry.
func Register() {
	metrics.Registry.MustRegister(
		ReconcileTotal,
		ReconcileDuration,
		FrontendIntegrationsTotal,
		BuildJobsActive,
		BuildDuration,
		APIServerRequestsTotal,
		WorkQueueDepth,
		WorkQueueLatency,
		ErrorsTotal,
		LifecycleEventsTotal,
		StaleCheckOutcomesTotal,
	)
}

// ReconcilerMetrics wraps the package-level collectors for use from the
// reconciler. Exemplars link a histogram observation to the active OTEL span.
type ReconcilerMetrics struct {
	ExemplarsEnabled bool
}

// NewReconcilerMetrics creates a ReconcilerMetrics with exemplars enabled.
func NewReconcilerMetrics() *ReconcilerMetrics {
	return &ReconcilerMetrics{ExemplarsEnabled: true}
}

// NewReconcilerMetricsWithExemplars creates a ReconcilerMetrics with explicit
// exemplar support.
func NewReconcilerMetricsWithExemplars(enabled bool) *ReconcilerMetrics {
	return &ReconcilerMetrics{ExemplarsEnabled: enabled}
}

// RecordReconcile records a reconciliation.
func (m *ReconcilerMetrics) RecordReconcile(phase, result string, durationSeconds float64) {
	ReconcileTotal.WithLabelValues(phase, result).Inc()
	ReconcileDuration.WithLabelValues(phase).Observe(durationSeconds)
}

// RecordReconcileWithContext records a reconciliation with a trace exemplar.
func (m *ReconcilerMetrics) RecordReconcileWithContext(ctx context.Context, phase, result string, durationSeconds float64) {
	ReconcileTotal.WithLabelValues(phase, result).Inc()

	if m.ExemplarsEnabled {
		if exemplar := m.extractExemplar(ctx); exemplar != nil {
			ReconcileDuration.WithLabelValues(phase).(prometheus.ExemplarObserver).ObserveWithExemplar(durationSeconds, exemplar)
			return
		}
	}
	ReconcileDuration.WithLabelValues(phase).Observe(durationSeconds)
}

// RecordBuild records a build-service round trip.
func (m *ReconcilerMetrics) RecordBuild(result string, durationSeconds float64) {
	BuildDuration.WithLabelValues(result).Observe(durationSeconds)
}

// RecordBuildWithContext records a build-service round trip with a trace exemplar.
func (m *ReconcilerMetrics) RecordBuildWithContext(ctx context.Context, result string, durationSeconds float64) {
	if m.ExemplarsEnabled {
		if exemplar := m.extractExemplar(ctx); exemplar != nil {
			BuildDuration.WithLabelValues(result).(prometheus.ExemplarObserver).ObserveWithExemplar(durationSeconds, exemplar)
			return
		}
	}
	BuildDuration.WithLabelValues(result).Observe(durationSeconds)
}

// RecordError records an error.
func (m *ReconcilerMetrics) RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// RecordErrorWithContext records an error with a trace exemplar.
func (m *ReconcilerMetrics) RecordErrorWithContext(ctx context.Context, component, errorType string) {
	if m.ExemplarsEnabled {
		if exemplar := m.extractExemplar(ctx); exemplar != nil {
			ErrorsTotal.WithLabelValues(component, errorType).(prometheus.ExemplarAdder).AddWithExemplar(1, exemplar)
			return
		}
	}
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// SetFrontendIntegrationCount sets the FrontendIntegration count for a phase.
func (m *ReconcilerMetrics) SetFrontendIntegrationCount(phase string, count float64) {
	FrontendIntegrationsTotal.WithLabelValues(phase).Set(count)
}

// SetActiveBuildJobs sets the active build Job count.
func (m *ReconcilerMetrics) SetActiveBuildJobs(count float64) {
	BuildJobsActive.Set(count)
}

// RecordLifecycleEvent records a CloudEvent emission outcome.
func (m *ReconcilerMetrics) RecordLifecycleEvent(eventType, result string) {
	LifecycleEventsTotal.WithLabelValues(eventType, result).Inc()
}

// RecordStaleCheckOutcome records how a runner's stale-check poll resolved.
func (m *ReconcilerMetrics) RecordStaleCheckOutcome(outcome string) {
	StaleCheckOutcomesTotal.WithLabelValues(outcome).Inc()
}

// extractExemplar extracts trace_id and span_id from context for exemplars.
func (m *ReconcilerMetrics) extractExemplar(ctx context.Context) prometheus.Labels {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return nil
	}
	return prometheus.Labels{
		"trace_id": span.SpanContext().TraceID().String(),
		"span_id":  span.SpanContext().SpanID().String(),
	}
}
