package jsonp

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides prometheus metrics for the request lifecycle.
// It is safe for concurrent use.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
}

// NewMetricsCollector creates a collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "jsonp_requests_total",
				Help: "Total number of finished JSONP requests by outcome",
			},
			[]string{"outcome"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jsonp_request_duration_seconds",
				Help:    "Duration of JSONP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		requestsInFlight: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "jsonp_requests_in_flight",
				Help: "Number of JSONP requests currently in flight",
			},
		),
	}
}

// RecordSent tracks a newly issued request.
func (mc *MetricsCollector) RecordSent() {
	mc.requestsInFlight.Inc()
}

// RecordComplete tracks a request that finished with the given outcome.
func (mc *MetricsCollector) RecordComplete(outcome string, duration time.Duration) {
	mc.requestsInFlight.Dec()
	mc.requestsTotal.WithLabelValues(outcome).Inc()
	mc.requestDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordAbort tracks an aborted request.
func (mc *MetricsCollector) RecordAbort() {
	mc.requestsInFlight.Dec()
	mc.requestsTotal.WithLabelValues("aborted").Inc()
}
