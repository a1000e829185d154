package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the route and alert stores.
type Metrics struct {
	RiskLookups   *prometheus.CounterVec // labels: outcome={success,error,stale}
	AlertsCreated *prometheus.CounterVec // labels: severity
	AlertsGated   prometheus.Counter
	LimitRejected prometheus.Counter
	ActiveRoutes  prometheus.Gauge
}

// NewMetrics creates and registers all instruments with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RiskLookups,
		m.AlertsCreated,
		m.AlertsGated,
		m.LimitRejected,
		m.ActiveRoutes,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so
// multiple tests can construct stores without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RiskLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "risk_lookups_total",
			Help:      "Risk lookup resolutions by outcome.",
		}, []string{"outcome"}),
		AlertsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "alerts_created_total",
			Help:      "Alerts accepted into the feed by severity.",
		}, []string{"severity"}),
		AlertsGated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "alerts_gated_total",
			Help:      "Candidate alerts suppressed by notification settings.",
		}),
		LimitRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "route_limit_rejections_total",
			Help:      "Route creations rejected at the configured route limit.",
		}),
		ActiveRoutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "floodwatch",
			Name:      "active_routes",
			Help:      "Number of routes currently tracked.",
		}),
	}
}
