package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(analysisRequestsTotal, analysisLatencyMs)
}

var (
	// result: ok|error
	analysisRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Text analysis requests by outcome.",
		},
		[]string{"result"},
	)

	analysisLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_latency_ms",
			Help:    "Analyzer round-trip latency in milliseconds, cache included.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
	)
)

func IncAnalysis(result string) {
	analysisRequestsTotal.WithLabelValues(norm(result)).Inc()
}

func ObserveAnalysisLatency(ms int) {
	analysisLatencyMs.Observe(float64(ms))
}
