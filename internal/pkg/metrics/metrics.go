package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "purchase_engine"

// Metrics groups the engine collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	purchases       *prometheus.CounterVec
	acknowledgments *prometheus.CounterVec
	ackAttempts     prometheus.Counter
	reconciliations *prometheus.CounterVec
	restoreItems    *prometheus.CounterVec
	strayEvents     *prometheus.CounterVec
	purchaseLatency prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		purchases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "purchase",
				Name:      "outcomes_total",
				Help:      "Purchase flows by outcome.",
			},
			[]string{"outcome"},
		),
		acknowledgments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ack",
				Name:      "results_total",
				Help:      "Acknowledgment results after retries.",
			},
			[]string{"result"},
		),
		ackAttempts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ack",
				Name:      "attempts_total",
				Help:      "Individual acknowledgment attempts sent to the platform.",
			},
		),
		reconciliations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "reconciliations_total",
				Help:      "Backend reconciliation calls by result.",
			},
			[]string{"result"},
		),
		restoreItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "restore",
				Name:      "items_total",
				Help:      "Restored items by result.",
			},
			[]string{"result"},
		),
		strayEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "events",
				Name:      "stray_total",
				Help:      "Platform events that arrived with no pending purchase.",
			},
			[]string{"kind"},
		),
		purchaseLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "purchase",
				Name:      "duration_seconds",
				Help:      "Time from purchase request to final result.",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
		),
	}

	m.registry.MustRegister(
		m.purchases,
		m.acknowledgments,
		m.ackAttempts,
		m.reconciliations,
		m.restoreItems,
		m.strayEvents,
		m.purchaseLatency,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) PurchaseOutcome(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.purchases.WithLabelValues(outcome).Inc()
	m.purchaseLatency.Observe(seconds)
}

func (m *Metrics) AckAttempt() {
	if m == nil {
		return
	}
	m.ackAttempts.Inc()
}

func (m *Metrics) AckResult(ok bool) {
	if m == nil {
		return
	}
	m.acknowledgments.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) Reconciliation(res string) {
	if m == nil {
		return
	}
	m.reconciliations.WithLabelValues(res).Inc()
}

func (m *Metrics) RestoreItem(res string) {
	if m == nil {
		return
	}
	m.restoreItems.WithLabelValues(res).Inc()
}

func (m *Metrics) StrayEvent(kind string) {
	if m == nil {
		return
	}
	m.strayEvents.WithLabelValues(kind).Inc()
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
