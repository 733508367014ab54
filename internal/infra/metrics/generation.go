package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		generationSessionsStarted,
		generationSessionsSettled,
		generationSessionsDismissed,
		generationPollFetches,
		generationPollSkippedTicks,
		generationRefreshesFired,
		generationJobDuration,
		generationGeneratorOutcomes,
	)
}

var (
	generationSessionsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "generation_sessions_started_total",
			Help: "Orchestration sessions created, including ones that fail at submission.",
		},
	)

	// outcome: succeeded|partial_failure|failed|submit_failed
	generationSessionsSettled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_sessions_settled_total",
			Help: "Orchestration sessions reaching a terminal state, by outcome.",
		},
		[]string{"outcome"},
	)

	generationSessionsDismissed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "generation_sessions_dismissed_total",
			Help: "Dismiss operations accepted while a session was live.",
		},
	)

	// result: applied|stale|error
	generationPollFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_poll_fetches_total",
			Help: "Status fetches by what happened to their result.",
		},
		[]string{"result"},
	)

	generationPollSkippedTicks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "generation_poll_skipped_ticks_total",
			Help: "Poll ticks skipped because the previous fetch was still in flight.",
		},
	)

	generationRefreshesFired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "generation_refreshes_fired_total",
			Help: "Success side effects actually performed after the settle delay.",
		},
	)

	generationJobDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generation_job_duration_seconds",
			Help:    "Wall time from session start to settle.",
			Buckets: []float64{1, 2, 5, 10, 20, 40, 80, 160, 320},
		},
	)

	generationGeneratorOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_generator_outcomes_total",
			Help: "Final per-generator states of settled sessions.",
		},
		[]string{"generator", "status"},
	)
)

func IncSessionStarted() { generationSessionsStarted.Inc() }

func IncSessionSettled(outcome string) {
	generationSessionsSettled.WithLabelValues(norm(outcome)).Inc()
}

func IncSessionDismissed() { generationSessionsDismissed.Inc() }

func IncPollFetch(result string) {
	generationPollFetches.WithLabelValues(norm(result)).Inc()
}

func IncPollSkippedTick() { generationPollSkippedTicks.Inc() }

func IncRefreshFired() { generationRefreshesFired.Inc() }

func ObserveJobDuration(seconds float64) { generationJobDuration.Observe(seconds) }

func IncGeneratorOutcome(generator, status string) {
	generationGeneratorOutcomes.WithLabelValues(norm(generator), norm(status)).Inc()
}
