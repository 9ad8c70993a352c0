package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeaderboardCacheTotal counts leaderboard cache lookups by result
// ("hit"/"miss").
var LeaderboardCacheTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "crimedex",
		Name:      "leaderboard_cache_total",
		Help:      "Leaderboard cache lookups by result",
	},
	[]string{"result"},
)

// RegisterCacheMetrics registers the cache metrics. Called explicitly from
// the composition root when the cache is enabled (no init()).
func RegisterCacheMetrics() {
	prometheus.MustRegister(LeaderboardCacheTotal)
}
