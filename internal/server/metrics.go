package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors of the HTTP adapter on a private registry.
type Metrics struct {
	registry       *prometheus.Registry
	computeSeconds *prometheus.HistogramVec
	filteredOrders *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	computeSeconds := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bitesdash_view_compute_seconds",
			Help:    "Time taken to compute a dashboard view",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"view"},
	)
	filteredOrders := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bitesdash_filtered_orders",
			Help: "Orders selected by the last request for a view",
		},
		[]string{"view"},
	)

	registry.MustRegister(computeSeconds, filteredOrders)

	return &Metrics{
		registry:       registry,
		computeSeconds: computeSeconds,
		filteredOrders: filteredOrders,
	}
}

func (m *Metrics) observe(view string, seconds float64, filtered int) {
	m.computeSeconds.WithLabelValues(view).Observe(seconds)
	m.filteredOrders.WithLabelValues(view).Set(float64(filtered))
}
