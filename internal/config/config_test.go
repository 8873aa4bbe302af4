package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_copy_detect/internal/core/detector"
	"github.com/baditaflorin/go_copy_detect/internal/core/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, detector.DefaultConfig(), cfg.DetectorConfig())
	assert.Equal(t, domain.DefaultBandingPolicy(), cfg.BandingPolicy())
	assert.Equal(t, "text", cfg.Report.Format)
	assert.NoError(t, cfg.DetectorConfig().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := `
detector:
  min_words: 6
  passage_threshold: 0.9
banding:
  highly_likely: 0.75
report:
  format: json
  no_color: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden values.
	assert.Equal(t, 6, cfg.Detector.MinWords)
	assert.Equal(t, 0.9, cfg.Detector.PassageThreshold)
	assert.Equal(t, 0.75, cfg.Banding.HighlyLikely)
	assert.Equal(t, "json", cfg.Report.Format)
	assert.True(t, cfg.Report.NoColor)

	// Untouched keys keep their defaults.
	d := detector.DefaultConfig()
	assert.Equal(t, d.NGramSize, cfg.Detector.NGramSize)
	assert.Equal(t, d.NGramWeight, cfg.Detector.NGramWeight)
	assert.Equal(t, domain.DefaultBandingPolicy().Significant, cfg.Banding.Significant)
}

func TestLoadInvalidDetectorSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := `
detector:
  ngram_weight: 0.9
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("detector: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
