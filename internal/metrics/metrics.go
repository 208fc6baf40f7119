// Package metrics exposes front desk counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors the API updates.
type Metrics struct {
	registry           *prometheus.Registry
	CheckIns           prometheus.Counter
	CheckOuts          prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	ActiveMembers      prometheus.Gauge
}

// New registers the gym collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		CheckIns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gym",
			Name:      "checkins_total",
			Help:      "Members checked in.",
		}),
		CheckOuts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gym",
			Name:      "checkouts_total",
			Help:      "Members checked out. Repeated check-outs are not counted.",
		}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gym",
			Name:      "checkin_validation_failures_total",
			Help:      "Rejected check-in submissions by offending field.",
		}, []string{"field"}),
		ActiveMembers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gym",
			Name:      "active_members",
			Help:      "Members currently checked in.",
		}),
	}
	reg.MustRegister(
		m.CheckIns,
		m.CheckOuts,
		m.ValidationFailures,
		m.ActiveMembers,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
