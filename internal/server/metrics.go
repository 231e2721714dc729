package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jacksparrot/jsp/internal/registry"
)

const metricsNamespace = "jsp"

// Refresh results recorded on jsp_manifest_refresh_total.
const (
	refreshSuccess = "success"
	refreshFailure = "failure"
)

type metrics struct {
	registry  *prometheus.Registry
	packages  *prometheus.GaugeVec
	refreshes *prometheus.CounterVec
	requests  *prometheus.HistogramVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		packages: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "packages",
			Help:      "Packages in the last reconciled snapshot, by state.",
		}, []string{"state"}),
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "manifest_refresh_total",
			Help:      "Forced manifest refreshes, by result.",
		}, []string{"result"}),
		requests: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Status server request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "code"}),
	}
}

func (m *metrics) observeSummary(summary registry.Summary) {
	m.packages.WithLabelValues("total").Set(float64(summary.Total))
	m.packages.WithLabelValues("installed").Set(float64(summary.Installed))
	m.packages.WithLabelValues("up_to_date").Set(float64(summary.UpToDate))
	m.packages.WithLabelValues("outdated").Set(float64(summary.Outdated))
	m.packages.WithLabelValues("missing").Set(float64(summary.Missing))
}
