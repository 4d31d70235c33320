package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation computation handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quiz_recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Sessions started, answers recorded and ratings received
	SessionsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quiz_sessions_started_total",
		Help: "Total number of quiz sessions started",
	})

	RecommendationsServed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quiz_recommendations_served_total",
		Help: "Total number of recommendation sets served",
	})

	RatingsReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quiz_ratings_received_total",
		Help: "Total number of beverage ratings received",
	})

	ModelRetrains = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quiz_model_retrains_total",
		Help: "Total number of preference model retrains",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		SessionsStarted,
		RecommendationsServed,
		RatingsReceived,
		ModelRetrains,
	)
}
