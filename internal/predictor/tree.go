package predictor

import (
	"context"
	"fmt"

	"auroramart/internal/model"

	"github.com/rs/zerolog"
)

// treePredictor implements Predictor by walking a loaded decision tree.
// The artifact is read-only after construction, so Predict is safe for
// concurrent use.
type treePredictor struct {
	artifact *Artifact
	logger   zerolog.Logger
}

// New loads the model artifact through the given loader and returns a ready
// predictor. The artifact is loaded once at construction; there is no lazy
// or global state.
func New(ctx context.Context, path string, loader Loader, logger zerolog.Logger) (Predictor, error) {
	logger = logger.With().Str("component", "category-predictor").Logger()

	artifact, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model artifact: %w", err)
	}

	logger.Info().
		Str("model", artifact.ModelName).
		Str("version", artifact.Version).
		Float64("accuracy", artifact.Accuracy).
		Int("nodes", len(artifact.Nodes)).
		Msg("category predictor initialised")

	return &treePredictor{
		artifact: artifact,
		logger:   logger,
	}, nil
}

// Predict walks the tree from the root and returns the leaf label.
func (p *treePredictor) Predict(ctx context.Context, profile model.CustomerProfile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	features := p.artifact.featureVector(profile)

	idx := 0
	// A well-formed tree reaches a leaf in fewer steps than it has nodes;
	// the bound guards against a cyclic artifact.
	for steps := 0; steps < len(p.artifact.Nodes); steps++ {
		node := &p.artifact.Nodes[idx]
		if node.IsLeaf() {
			p.logger.Debug().
				Str("label", node.Label).
				Int("leaf", idx).
				Msg("category predicted")
			return node.Label, nil
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}

	return "", fmt.Errorf("model artifact %s: tree walk did not reach a leaf", p.artifact.Version)
}

// Info returns metadata of the loaded model.
func (p *treePredictor) Info() ModelInfo {
	return ModelInfo{
		Name:      p.artifact.ModelName,
		Version:   p.artifact.Version,
		TrainedAt: p.artifact.TrainedAt,
		Accuracy:  p.artifact.Accuracy,
		Loaded:    true,
	}
}

// Close releases resources held by the predictor.
func (p *treePredictor) Close() error {
	p.artifact = nil
	p.logger.Info().Msg("category predictor closed")
	return nil
}

// unavailablePredictor is the explicit degraded state used when no model
// could be loaded or prediction is disabled. Every call reports
// ErrUnavailable so callers fall back visibly instead of consulting a nil
// global.
type unavailablePredictor struct {
	logger zerolog.Logger
}

// Unavailable returns a predictor in the documented unavailable state.
func Unavailable(logger zerolog.Logger) Predictor {
	return &unavailablePredictor{
		logger: logger.With().Str("component", "category-predictor").Logger(),
	}
}

func (p *unavailablePredictor) Predict(ctx context.Context, profile model.CustomerProfile) (string, error) {
	return "", ErrUnavailable
}

func (p *unavailablePredictor) Info() ModelInfo {
	return ModelInfo{Loaded: false}
}

func (p *unavailablePredictor) Close() error {
	return nil
}
