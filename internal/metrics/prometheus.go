package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	gatewayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_gateway_requests_total",
			Help: "Total number of requests sent by the mirror to the catalog backend.",
		},
		[]string{"method", "endpoint", "status"},
	)
	gatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_gateway_request_duration_seconds",
			Help:    "Histogram of catalog backend request durations seen by the mirror.",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served by the catalog backend.",
		},
		[]string{"method", "endpoint", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations served by the catalog backend.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint", "status"},
	)
)

func init() {
	prometheus.MustRegister(gatewayRequestsTotal)
	prometheus.MustRegister(gatewayRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
}

// RecordGatewayRequest records one outgoing backend call. statusCode is 0 when
// no response was received.
func RecordGatewayRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := ClassifyStatus(statusCode)
	gatewayRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	gatewayRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// RecordRequest records one request served by the backend.
func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := ClassifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// ClassifyStatus folds a status code into its class label.
func ClassifyStatus(statusCode int) string {
	switch {
	case statusCode == 0:
		return "error"
	case statusCode >= 100 && statusCode < 600:
		return strconv.Itoa(statusCode/100) + "xx"
	}
	return "unknown"
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
