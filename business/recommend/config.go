package recommend

import (
	"context"

	"offerPilot/domain"
)

// Config carries the engine tuning for one surface. Weights are tunable
// configuration, not hardcoded law.
type Config struct {
	WindowDays  int
	AnchorCount int
	PanelSize   int
	TauDays     float64

	// backtesting: drop the most recent N transactions before scoring
	ExcludeRecent int

	WSimilarity float64
	WValue      float64
	WNovelty    float64

	WAnchorFreq  float64
	WAnchorSpend float64

	TopNCategories int
	TopNMerchants  int
}

const (
	defaultWindowDays  = 30
	defaultAnchorCount = 5
	defaultPanelSize   = 6
	defaultTauDays     = 7.0

	defaultWSimilarity = 0.6
	defaultWValue      = 0.25
	defaultWNovelty    = 0.15

	defaultWAnchorFreq  = 0.6
	defaultWAnchorSpend = 0.4

	defaultTopNCategories = 3
	defaultTopNMerchants  = 5
)

func DefaultConfig() Config {
	return Config{
		WindowDays:  defaultWindowDays,
		AnchorCount: defaultAnchorCount,
		PanelSize:   defaultPanelSize,
		TauDays:     defaultTauDays,

		WSimilarity: defaultWSimilarity,
		WValue:      defaultWValue,
		WNovelty:    defaultWNovelty,

		WAnchorFreq:  defaultWAnchorFreq,
		WAnchorSpend: defaultWAnchorSpend,

		TopNCategories: defaultTopNCategories,
		TopNMerchants:  defaultTopNMerchants,
	}
}

// read per-surface engine config from DB.
type ConfigRepository interface {
	GetConfig(ctx context.Context, surface string) (domain.RecoConfig, bool, error)
	UpsertConfig(ctx context.Context, cfg domain.RecoConfig) error
}
