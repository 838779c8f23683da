package predictor

import (
	"context"
	"errors"
	"time"

	"auroramart/internal/model"
)

// ErrUnavailable signals that no usable model is loaded. Callers must treat
// this as degraded mode: proceed without a prediction and log it, never
// block the write.
var ErrUnavailable = errors.New("category predictor unavailable")

// Predictor maps a customer profile to a preferred shopping category.
type Predictor interface {
	// Predict returns one category label for the given profile.
	Predict(ctx context.Context, profile model.CustomerProfile) (string, error)

	// Info returns metadata of the loaded model; the zero value when no
	// model is loaded.
	Info() ModelInfo

	// Close releases resources held by the predictor.
	Close() error
}

// ModelInfo describes the deployed model artifact.
type ModelInfo struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	TrainedAt time.Time `json:"trainedAt"`
	Accuracy  float64   `json:"accuracy"`
	Loaded    bool      `json:"loaded"`
}

// Loader defines the interface for loading model artifacts.
type Loader interface {
	// Load reads a gzipped JSON model artifact and returns it parsed.
	Load(ctx context.Context, path string) (*Artifact, error)
}
