package ratelimit

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements Metrics on a Prometheus registry.
type PrometheusMetrics struct {
	requestsTotal  *prometheus.CounterVec
	activeKeys     *prometheus.GaugeVec
	evictionsTotal *prometheus.CounterVec
}

// NewPrometheusMetrics creates the rate limit metric set and registers it
// with the given registerer (pass prometheus.DefaultRegisterer for the
// process registry).
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ratelimit_requests_total",
			Help: "Rate limit checks by limiter and outcome.",
		}, []string{"limiter", "status"}),
		activeKeys: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ratelimit_active_keys",
			Help: "Number of keys currently tracked per limiter.",
		}, []string{"limiter"}),
		evictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ratelimit_evictions_total",
			Help: "Keys evicted by the key cap or idle cleanup.",
		}, []string{"limiter"}),
	}
	reg.MustRegister(m.requestsTotal, m.activeKeys, m.evictionsTotal)
	return m
}

func (m *PrometheusMetrics) RecordAllowed(limiter string) {
	m.requestsTotal.WithLabelValues(limiter, "allowed").Inc()
}

func (m *PrometheusMetrics) RecordDenied(limiter string) {
	m.requestsTotal.WithLabelValues(limiter, "denied").Inc()
}

func (m *PrometheusMetrics) SetActiveKeys(limiter string, count int) {
	m.activeKeys.WithLabelValues(limiter).Set(float64(count))
}

func (m *PrometheusMetrics) RecordEviction(limiter string, count int) {
	m.evictionsTotal.WithLabelValues(limiter).Add(float64(count))
}
