// Package config loads the detection policy file. Every value has a default;
// a config file only needs the keys it overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/baditaflorin/go_copy_detect/internal/core/detector"
	"github.com/baditaflorin/go_copy_detect/internal/core/domain"
)

// Config represents the application configuration.
type Config struct {
	// Detector settings
	Detector struct {
		NGramSize        int     `yaml:"ngram_size"`
		MinWords         int     `yaml:"min_words"`
		NGramWeight      float64 `yaml:"ngram_weight"`
		SequenceWeight   float64 `yaml:"sequence_weight"`
		PassageThreshold float64 `yaml:"passage_threshold"`
		ExactThreshold   float64 `yaml:"exact_threshold"`
		Threshold        float64 `yaml:"threshold"`
	} `yaml:"detector"`

	// Banding thresholds for the report verdict
	Banding struct {
		HighlyLikely float64 `yaml:"highly_likely"`
		Significant  float64 `yaml:"significant"`
		Some         float64 `yaml:"some"`
	} `yaml:"banding"`

	// Report output settings
	Report struct {
		Format    string `yaml:"format"`
		NoColor   bool   `yaml:"no_color"`
		NoDiff    bool   `yaml:"no_diff"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"report"`
}

// Default returns a configuration populated with the default policy values.
func Default() *Config {
	cfg := &Config{}

	d := detector.DefaultConfig()
	cfg.Detector.NGramSize = d.NGramSize
	cfg.Detector.MinWords = d.MinWords
	cfg.Detector.NGramWeight = d.NGramWeight
	cfg.Detector.SequenceWeight = d.SequenceWeight
	cfg.Detector.PassageThreshold = d.PassageThreshold
	cfg.Detector.ExactThreshold = d.ExactThreshold
	cfg.Detector.Threshold = d.Threshold

	b := domain.DefaultBandingPolicy()
	cfg.Banding.HighlyLikely = b.HighlyLikely
	cfg.Banding.Significant = b.Significant
	cfg.Banding.Some = b.Some

	cfg.Report.Format = "text"
	return cfg
}

// Load reads a YAML config file on top of the defaults and validates the
// resulting detector settings.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.DetectorConfig().Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// DetectorConfig converts the config into a detector configuration.
func (c *Config) DetectorConfig() detector.Config {
	return detector.Config{
		NGramSize:        c.Detector.NGramSize,
		MinWords:         c.Detector.MinWords,
		NGramWeight:      c.Detector.NGramWeight,
		SequenceWeight:   c.Detector.SequenceWeight,
		PassageThreshold: c.Detector.PassageThreshold,
		ExactThreshold:   c.Detector.ExactThreshold,
		Threshold:        c.Detector.Threshold,
	}
}

// BandingPolicy converts the config into a banding policy.
func (c *Config) BandingPolicy() domain.BandingPolicy {
	return domain.BandingPolicy{
		HighlyLikely: c.Banding.HighlyLikely,
		Significant:  c.Banding.Significant,
		Some:         c.Banding.Some,
	}
}
