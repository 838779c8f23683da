package predictor

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading model artifacts from the local
// file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based artifact loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "model-loader").Logger(),
	}
}

// Load reads a gzipped JSON model artifact from disk.
func (l *fileLoader) Load(ctx context.Context, path string) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", path).Msg("loading model artifact")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open model artifact")
		return nil, fmt.Errorf("failed to open model artifact %s: %w", path, err)
	}
	defer file.Close()

	artifact, err := DecodeArtifact(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode model artifact")
		return nil, fmt.Errorf("failed to decode model artifact %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Str("version", artifact.Version).
		Msg("model artifact loaded")

	return artifact, nil
}
