package predictor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoader_Load(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "model.json.gz")
	require.NoError(t, os.WriteFile(path, encodeArtifact(t, testArtifact()), 0o644))

	loader := NewFileLoader(logger)

	artifact, err := loader.Load(ctx, path)

	require.NoError(t, err)
	assert.Equal(t, "2024-11-03", artifact.Version)
}

func TestFileLoader_MissingFile(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	loader := NewFileLoader(logger)

	_, err := loader.Load(ctx, filepath.Join(t.TempDir(), "nope.json.gz"))

	require.Error(t, err)
}

func TestFileLoader_CorruptFile(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "model.json.gz")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	loader := NewFileLoader(logger)

	_, err := loader.Load(ctx, path)

	require.Error(t, err)
}

func TestFileLoader_CancelledContext(t *testing.T) {
	logger := zerolog.Nop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewFileLoader(logger)

	_, err := loader.Load(ctx, "model.json.gz")

	require.ErrorIs(t, err, context.Canceled)
}

func TestFallbackLoader_S3First(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	s3 := &stubLoader{artifact: testArtifact()}
	file := &stubLoader{artifact: testArtifact()}

	loader := NewFallbackLoader(s3, file, "models/", true, logger)

	_, err := loader.Load(ctx, "model.json.gz")

	require.NoError(t, err)
	assert.Equal(t, []string{"models/model.json.gz"}, s3.paths)
	assert.Empty(t, file.paths)
}

func TestFallbackLoader_FallsBackToFile(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	s3 := &stubLoader{err: assert.AnError}
	file := &stubLoader{artifact: testArtifact()}

	loader := NewFallbackLoader(s3, file, "models/", true, logger)

	artifact, err := loader.Load(ctx, "model.json.gz")

	require.NoError(t, err)
	assert.Equal(t, "2024-11-03", artifact.Version)
	assert.Equal(t, []string{"models/model.json.gz"}, s3.paths)
	assert.Equal(t, []string{"model.json.gz"}, file.paths)
}

func TestFallbackLoader_S3Disabled(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	s3 := &stubLoader{artifact: testArtifact()}
	file := &stubLoader{artifact: testArtifact()}

	loader := NewFallbackLoader(s3, file, "models/", false, logger)

	_, err := loader.Load(ctx, "model.json.gz")

	require.NoError(t, err)
	assert.Empty(t, s3.paths)
	assert.Equal(t, []string{"model.json.gz"}, file.paths)
}
