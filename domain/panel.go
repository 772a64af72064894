package domain

// AnchorMerchant seeds one recommendation panel. The anchor set of a single
// request never contains two anchors in the same category.
type AnchorMerchant struct {
	Merchant string  `json:"merchant"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

type ScoredCandidate struct {
	VendorID   string    `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	OfferType  OfferType `json:"offer_type"`
	Score      float64   `json:"score"`
}

type PanelOffer struct {
	VendorID   string `json:"vendor_id"`
	VendorName string `json:"vendor_name"`
}

// OfferPanel is the output unit consumed by the presentation layer. Field
// names and nesting are part of the contract.
type OfferPanel struct {
	Reason         string       `json:"reason"`
	AnchorMerchant string       `json:"anchor_merchant"`
	Category       string       `json:"category"`
	Offers         []PanelOffer `json:"offers"`
}

// DebugCandidate exposes score components for inspection.
type DebugCandidate struct {
	VendorID   string    `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	OfferType  OfferType `json:"offer_type"`
	Similarity float64   `json:"similarity"`
	ValueNorm  float64   `json:"value_norm"`
	Novelty    float64   `json:"novelty"`
	FinalScore float64   `json:"final_score"`
}

type DebugPanel struct {
	Anchor     AnchorMerchant   `json:"anchor"`
	Filtered   bool             `json:"filtered"`
	Candidates []DebugCandidate `json:"candidates"`
}
