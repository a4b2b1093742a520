package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Matching engine Prometheus metrics.
var (
	MatchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_requests_total",
			Help:      "Total number of match computations by outcome",
		},
		[]string{"outcome"}, // ok / no_preferences / store_error
	)

	MatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_duration_seconds",
			Help:      "Match computation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"outcome"},
	)

	MatchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_candidates",
			Help:      "Candidate postings scored per request",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	MatchGateRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_gate_rejected_total",
			Help:      "Candidates rejected for matching neither title nor skills",
		},
	)

	MatchReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_returned",
			Help:      "Matches returned per request",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	PrefCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pref_cache_total",
			Help:      "Seeker preference cache hits and misses",
		},
		[]string{"kind", "result"}, // prefs|profile, hit|miss
	)

	InteractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_total",
			Help:      "Recorded seeker interactions by action",
		},
		[]string{"action"},
	)

	BoostsExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boosts_expired_total",
			Help:      "Boost flags cleared by the sweeper",
		},
	)
)

var registerOnce sync.Once

// RegisterMatchingMetrics registers the engine metrics. Must be called from main.
func RegisterMatchingMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			MatchRequestsTotal,
			MatchDuration,
			MatchCandidates,
			MatchGateRejectedTotal,
			MatchReturned,
			PrefCacheTotal,
			InteractionsTotal,
			BoostsExpiredTotal,
		)
	})
}

// MatchObserver feeds engine measurements into the package metrics.
type MatchObserver struct{}

// ObserveMatch records one match computation.
func (MatchObserver) ObserveMatch(outcome string, candidates, gateRejected, returned int, seconds float64) {
	MatchRequestsTotal.WithLabelValues(outcome).Inc()
	MatchDuration.WithLabelValues(outcome).Observe(seconds)
	if outcome != "ok" {
		return
	}
	MatchCandidates.Observe(float64(candidates))
	MatchGateRejectedTotal.Add(float64(gateRejected))
	MatchReturned.Observe(float64(returned))
}
