// Package metrics exposes Prometheus collectors for billing activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "line_billing_"

var (
	// CyclesAdvanced counts billing cycles opened, by plan.
	CyclesAdvanced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "cycles_advanced_total",
			Help: "Billing cycles opened",
		},
		[]string{"plan"},
	)

	// CallsBilled counts calls routed to a contract, by plan.
	CallsBilled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "calls_billed_total",
			Help: "Calls billed to a line",
		},
		[]string{"plan"},
	)

	// Terminations counts settled lines, by plan.
	Terminations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "terminations_total",
			Help: "Lines terminated and settled",
		},
		[]string{"plan"},
	)
)

// Register installs the billing collectors on reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(CyclesAdvanced, CallsBilled, Terminations)
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
