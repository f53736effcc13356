package trainer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricEpisodesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uavsim",
			Name:      "episodes_total",
			Help:      "Completed training episodes",
		},
		[]string{"algorithm"},
	)

	metricReturnedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uavsim",
			Name:      "returned_total",
			Help:      "Episodes where the UAV returned exactly on time (terminated)",
		},
		[]string{"algorithm"},
	)

	metricEpisodeReward = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "uavsim",
			Name:      "episode_reward",
			Help:      "Cumulative reward of the most recent episode",
		},
		[]string{"algorithm"},
	)

	metricEvalReward = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "uavsim",
			Name:      "eval_reward",
			Help:      "Cumulative reward of the most recent greedy evaluation episode",
		},
		[]string{"algorithm"},
	)

	metricFlightTime = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "uavsim",
			Name:      "flight_time",
			Help:      "Flight length in steps of the most recent episode",
		},
		[]string{"algorithm"},
	)

	metricEpsilon = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "uavsim",
			Name:      "epsilon",
			Help:      "Current exploration probability",
		},
		[]string{"algorithm"},
	)

	metricStatesVisited = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "uavsim",
			Name:      "states_visited",
			Help:      "Number of distinct states in the value table",
		},
		[]string{"algorithm"},
	)
)

// recordEpisodeMetrics updates the per-episode metrics.
func recordEpisodeMetrics(algorithm string, reward float64, flightTime int, terminated bool) {
	metricEpisodesTotal.WithLabelValues(algorithm).Inc()
	metricEpisodeReward.WithLabelValues(algorithm).Set(reward)
	metricFlightTime.WithLabelValues(algorithm).Set(float64(flightTime))
	if terminated {
		metricReturnedTotal.WithLabelValues(algorithm).Inc()
	}
}

// recordEvalMetrics updates the evaluation-episode metrics.
func recordEvalMetrics(algorithm string, reward float64) {
	metricEvalReward.WithLabelValues(algorithm).Set(reward)
}

// recordLearnerMetrics updates the learner-internal gauges.
func recordLearnerMetrics(algorithm string, epsilon float64, states int) {
	metricEpsilon.WithLabelValues(algorithm).Set(epsilon)
	metricStatesVisited.WithLabelValues(algorithm).Set(float64(states))
}
