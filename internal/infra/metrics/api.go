package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(apiRequestsTotal, apiRequestDuration)
}

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Studio API requests by route pattern and status code.",
		},
		[]string{"route", "status"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Studio API handler duration in seconds by route pattern.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route"},
	)
)

func ObserveAPIRequest(route string, status int, seconds float64) {
	apiRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	apiRequestDuration.WithLabelValues(route).Observe(seconds)
}
