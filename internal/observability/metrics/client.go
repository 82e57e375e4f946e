package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ClientMetrics tracks data-source traffic: which source served each
// operation, how it settled, and how often the listing soft-degraded to
// the synthetic catalog. All methods are nil-safe so instrumentation
// stays optional.
type ClientMetrics struct {
	registry *prometheus.Registry

	callsTotal    *prometheus.CounterVec
	callDuration  *prometheus.HistogramVec
	listFallbacks prometheus.Counter
	probeVerdicts *prometheus.CounterVec
}

func NewClientMetrics(service string) *ClientMetrics {
	registry := prometheus.NewRegistry()

	callsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragchat",
			Subsystem: "datasource",
			Name:      "calls_total",
			Help:      "Data-source calls by source, operation and outcome.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"source", "operation", "outcome"},
	)
	callDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragchat",
			Subsystem: "datasource",
			Name:      "call_duration_seconds",
			Help:      "Data-source call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"source", "operation"},
	)
	listFallbacks := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ragchat",
			Subsystem: "datasource",
			Name:      "list_fallbacks_total",
			Help:      "Remote listing failures served from the synthetic catalog.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	probeVerdicts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragchat",
			Subsystem: "availability",
			Name:      "probe_verdicts_total",
			Help:      "Availability verdicts observed per data-source call.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"verdict"},
	)

	registry.MustRegister(callsTotal, callDuration, listFallbacks, probeVerdicts)

	return &ClientMetrics{
		registry:      registry,
		callsTotal:    callsTotal,
		callDuration:  callDuration,
		listFallbacks: listFallbacks,
		probeVerdicts: probeVerdicts,
	}
}

func (m *ClientMetrics) ObserveCall(source, operation string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.callsTotal.WithLabelValues(source, operation, outcome).Inc()
	m.callDuration.WithLabelValues(source, operation).Observe(elapsed.Seconds())
}

func (m *ClientMetrics) RecordListFallback() {
	if m == nil {
		return
	}
	m.listFallbacks.Inc()
}

func (m *ClientMetrics) RecordVerdict(verdict string) {
	if m == nil {
		return
	}
	m.probeVerdicts.WithLabelValues(verdict).Inc()
}

func (m *ClientMetrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
