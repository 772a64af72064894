package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the panels HTTP handler
	PanelsLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reco_panels_latency_seconds",
		Help:    "Latency of the offer panels handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of panel requests served
	PanelsRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_panels_requests_total",
		Help: "Total number of offer panel requests",
	})
)

func Init() {
	prometheus.MustRegister(
		PanelsLatency,
		PanelsRequests,
	)
}
