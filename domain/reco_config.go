package domain

// RecoConfig is the per-surface tuning row for the offer engine. Missing
// surfaces fall back to compiled defaults.
type RecoConfig struct {
	Surface string `json:"surface" gorm:"column:surface;primaryKey"`

	WindowDays  int     `json:"window_days" gorm:"column:window_days"`
	AnchorCount int     `json:"anchor_count" gorm:"column:anchor_count"`
	PanelSize   int     `json:"panel_size" gorm:"column:panel_size"`
	TauDays     float64 `json:"tau_days" gorm:"column:tau_days"`

	// backtesting: ignore the most recent N transactions
	ExcludeRecent int `json:"exclude_recent" gorm:"column:exclude_recent"`

	WSimilarity float64 `json:"w_similarity" gorm:"column:w_similarity"`
	WValue      float64 `json:"w_value" gorm:"column:w_value"`
	WNovelty    float64 `json:"w_novelty" gorm:"column:w_novelty"`

	WAnchorFreq  float64 `json:"w_anchor_freq" gorm:"column:w_anchor_freq"`
	WAnchorSpend float64 `json:"w_anchor_spend" gorm:"column:w_anchor_spend"`
}

func (RecoConfig) TableName() string {
	return "reco_configs"
}
