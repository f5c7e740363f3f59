// Package metrics exposes the Prometheus collectors of the scoring engine.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry
	once     sync.Once
)

// Scoring run outcomes
const (
	OutcomeScored            = "scored"
	OutcomeNothingToScore    = "nothing_to_score"
	OutcomeNotFound          = "not_found"
	OutcomeNoVerifiedResults = "no_verified_results"
	OutcomeFailed            = "failed"
)

var (
	ScoringRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitwall",
		Name:      "scoring_runs_total",
		Help:      "Total number of event scoring runs by outcome",
	}, []string{"outcome"})
	PredictionsScoredTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitwall",
		Name:      "predictions_scored_total",
		Help:      "Total number of predictions scored by match kind",
	}, []string{"match"})
	PointsAwardedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitwall",
		Name:      "points_awarded_total",
		Help:      "Total number of points awarded to predictions",
	})
	ScoringDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pitwall",
		Name:      "scoring_duration_seconds",
		Help:      "Duration of an event scoring run including the standings rebuild",
		Buckets:   prometheus.DefBuckets,
	})
	StandingsRecomputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pitwall",
		Name:      "standings_recompute_duration_seconds",
		Help:      "Duration of a standings rebuild for one competition",
		Buckets:   prometheus.DefBuckets,
	})
)

// Registry returns the process registry with every collector registered.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			ScoringRunsTotal,
			PredictionsScoredTotal,
			PointsAwardedTotal,
			ScoringDuration,
			StandingsRecomputeDuration,
			collectors.NewGoCollector(),
		)
	})
	return registry
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}

func RecordScoringRun(outcome string, started time.Time) {
	ScoringRunsTotal.WithLabelValues(outcome).Inc()
	ScoringDuration.Observe(time.Since(started).Seconds())
}

func RecordPrediction(match string, points int) {
	PredictionsScoredTotal.WithLabelValues(match).Inc()
	PointsAwardedTotal.Add(float64(points))
}

func RecordStandingsRecompute(started time.Time) {
	StandingsRecomputeDuration.Observe(time.Since(started).Seconds())
}
