package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	gamesStored  *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	matchesTotal *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		gamesStored: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "heatcheck_games_stored_total",
				Help: "Total number of game-log rows stored",
			},
			[]string{"sport", "stat"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "heatcheck_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		matchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "heatcheck_criteria_matches_total",
				Help: "Total number of criteria matches emitted",
			},
			[]string{"sport"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "heatcheck_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordGameStored records a stored game-log row.
func (r *Recorder) RecordGameStored(sport, stat string) {
	r.gamesStored.WithLabelValues(sport, stat).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordMatchEmitted records a criteria match published downstream.
func (r *Recorder) RecordMatchEmitted(sport string) {
	r.matchesTotal.WithLabelValues(sport).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
