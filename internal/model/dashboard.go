package model

import "time"

// PredictorStatus describes the category prediction model as seen on the
// dashboard. Loaded is false when the service runs without a model.
type PredictorStatus struct {
	Loaded    bool      `json:"loaded"`
	Name      string    `json:"name,omitempty"`
	Version   string    `json:"version,omitempty"`
	TrainedAt time.Time `json:"trainedAt,omitempty"`
	Accuracy  float64   `json:"accuracy,omitempty"`
}

// DashboardSummary is the admin landing-page aggregate: entity counts,
// products needing reorder, the dominant customer segments, and the
// prediction model status.
type DashboardSummary struct {
	ProductCount     int             `json:"productCount"`
	CustomerCount    int             `json:"customerCount"`
	OrderCount       int             `json:"orderCount"`
	LowStockProducts []Product       `json:"lowStockProducts"`
	TopSegments      []SegmentCount  `json:"topSegments"`
	Predictor        PredictorStatus `json:"predictor"`
}
