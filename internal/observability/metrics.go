package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echo_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// GraphMutations counts social graph mutations by kind and outcome.
	GraphMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echo_graph_mutations_total",
		Help: "Total number of follow/unfollow mutations by kind and outcome",
	}, []string{"kind", "outcome"})

	// TweetMutations counts tweet lifecycle and engagement mutations.
	TweetMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echo_tweet_mutations_total",
		Help: "Total number of tweet create/delete/like/bookmark mutations",
	}, []string{"kind"})

	// AIChatLatency records latency of upstream AI chat calls.
	AIChatLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "echo_ai_chat_latency_seconds",
		Help:    "Latency of upstream generative AI calls in seconds",
		Buckets: prometheus.DefBuckets,
	})
)
