// Package metrics implements A3: Prometheus counters and gauges for
// session lifecycle, request throughput, reconnects, and poll-queue
// depth. Every metric is labeled by registry id so one daemon process
// serving several registries still yields per-registry breakdowns.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the set of collectors a session or facade reports to. It
// wraps its own *prometheus.Registry (New always builds a fresh one), so
// every caller, tests included, gets an independent set of collectors.
type Registry struct {
	reg *prometheus.Registry

	SessionState    *prometheus.GaugeVec
	Reconnects      *prometheus.CounterVec
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	PollQueueDepth  *prometheus.GaugeVec
	FacadeQueueLen  prometheus.Gauge
}

// New constructs and registers the full metric set against a fresh
// prometheus.Registry.
func New() *Registry {
	reg := prometheus.NewRegistry()
	m := &Registry{
		reg: reg,
		SessionState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "eppproxy",
			Name:      "session_state",
			Help:      "Current session lifecycle state (session.State numeric value) per registry.",
		}, []string{"registry"}),
		Reconnects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eppproxy",
			Name:      "session_reconnects_total",
			Help:      "Number of times a session has re-established its transport.",
		}, []string{"registry"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eppproxy",
			Name:      "requests_total",
			Help:      "Requests dispatched to a registry session, by kind and outcome.",
		}, []string{"registry", "kind", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eppproxy",
			Name:      "request_duration_seconds",
			Help:      "Time from request submission to reply delivery.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"registry", "kind"}),
		PollQueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "eppproxy",
			Name:      "poll_queue_depth",
			Help:      "Server-reported poll queue depth, last observed value per registry.",
		}, []string{"registry"}),
		FacadeQueueLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eppproxy",
			Name:      "facade_queue_length",
			Help:      "Current depth of the facade's single fan-in request channel.",
		}),
	}
	reg.MustRegister(
		m.SessionState,
		m.Reconnects,
		m.RequestsTotal,
		m.RequestDuration,
		m.PollQueueDepth,
		m.FacadeQueueLen,
	)
	return m
}

// Gatherer exposes the underlying registry for an HTTP handler
// (promhttp.HandlerFor) to serve.
func (m *Registry) Gatherer() prometheus.Gatherer {
	return m.reg
}

// ObserveOutcome records one completed request: its kind, whether it
// succeeded, and how long it took.
func (m *Registry) ObserveOutcome(registryID string, kind string, ok bool, seconds float64) {
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	m.RequestsTotal.WithLabelValues(registryID, kind, outcome).Inc()
	m.RequestDuration.WithLabelValues(registryID, kind).Observe(seconds)
}
