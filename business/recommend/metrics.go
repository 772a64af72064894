package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PanelsBuiltTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_panels_built_total",
			Help: "Count of offer panels built, by surface.",
		},
		[]string{"surface"},
	)

	AnchorFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reco_anchor_failures_total",
			Help: "Anchors skipped because their scoring pass failed.",
		},
	)

	UnfilteredFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reco_unfiltered_fallback_total",
			Help: "Scoring passes that widened to the full catalog because the anchor category was too thin.",
		},
	)

	EncoderBatchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reco_encoder_batches_total",
			Help: "Batch embedding calls made for the vendor catalog.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		PanelsBuiltTotal,
		AnchorFailuresTotal,
		UnfilteredFallbackTotal,
		EncoderBatchesTotal,
	)
}
