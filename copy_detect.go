// Package copydetect quantifies how much of one text document was copied,
// verbatim or lightly paraphrased, from another. A comparison produces an
// aggregate similarity score built from word n-gram Jaccard overlap (weight
// 0.4) and a character sequence-matcher ratio (weight 0.6), plus the specific
// sentence pairs that constitute copying, each classified as an exact or a
// modified copy.
//
// The detector is purely computational: no I/O, no shared mutable state, and
// identical inputs always produce identical results, so a single Detector is
// safe for concurrent use.
package copydetect

import (
	"context"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_copy_detect/internal/adapters/logger"
	"github.com/baditaflorin/go_copy_detect/internal/adapters/normalizer"
	"github.com/baditaflorin/go_copy_detect/internal/core/detector"
	"github.com/baditaflorin/go_copy_detect/internal/core/domain"
	"github.com/baditaflorin/go_copy_detect/internal/ports"
	"github.com/baditaflorin/go_copy_detect/internal/warmup"
)

// Result holds the outcome of one document comparison.
type Result = domain.Result

// PassageMatch records one matched original/suspect sentence pair.
type PassageMatch = domain.PassageMatch

// Verdict classifies a matched passage.
type Verdict = domain.Verdict

// Passage verdicts.
const (
	VerdictExactCopy    = domain.VerdictExactCopy
	VerdictModifiedCopy = domain.VerdictModifiedCopy
)

// BandingPolicy maps an overall similarity score onto a report verdict band.
type BandingPolicy = domain.BandingPolicy

// Detector compares pairs of documents for copied content.
type Detector struct {
	comparator ports.Comparator
	logger     ports.Logger
	policy     domain.BandingPolicy
}

// Option defines a functional option for configuring the Detector.
type Option func(*detectorConfig)

type detectorConfig struct {
	Core       detector.Config
	Policy     domain.BandingPolicy
	Logger     ports.Logger
	Normalizer ports.Normalizer
	WarmUp     bool
}

// WithNGramSize sets a custom word n-gram window length.
func WithNGramSize(n int) Option {
	return func(cfg *detectorConfig) {
		cfg.Core.NGramSize = n
	}
}

// WithMinWords sets the minimum word count an original sentence needs to be
// a passage-extraction candidate. Zero treats every sentence as a candidate,
// which is legal but noisy.
func WithMinWords(n int) Option {
	return func(cfg *detectorConfig) {
		cfg.Core.MinWords = n
	}
}

// WithWeights sets the n-gram and sequence score weights. They must sum to 1.
func WithWeights(ngram, sequence float64) Option {
	return func(cfg *detectorConfig) {
		cfg.Core.NGramWeight = ngram
		cfg.Core.SequenceWeight = sequence
	}
}

// WithPassageThresholds sets the passage emission threshold and the
// exact-copy threshold.
func WithPassageThresholds(passage, exact float64) Option {
	return func(cfg *detectorConfig) {
		cfg.Core.PassageThreshold = passage
		cfg.Core.ExactThreshold = exact
	}
}

// WithThreshold sets the overall-similarity level above which a result is flagged.
func WithThreshold(th float64) Option {
	return func(cfg *detectorConfig) {
		cfg.Core.Threshold = th
	}
}

// WithCoreConfig replaces the whole core detector configuration.
func WithCoreConfig(core detector.Config) Option {
	return func(cfg *detectorConfig) {
		cfg.Core = core
	}
}

// WithBandingPolicy sets custom report verdict bands.
func WithBandingPolicy(p BandingPolicy) Option {
	return func(cfg *detectorConfig) {
		cfg.Policy = p
	}
}

// WithLogger sets a custom logger.
func WithLogger(log l.Logger) Option {
	return func(cfg *detectorConfig) {
		cfg.Logger = logger.FromExisting(log)
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *detectorConfig) {
		cfg.Normalizer = n
	}
}

// WithOptimizedNormalizer switches to the pooled, table-driven normalizer.
func WithOptimizedNormalizer() Option {
	return func(cfg *detectorConfig) {
		cfg.Normalizer = normalizer.NewOptimizedNormalizer()
	}
}

// WithWarmUp enables a warmup pass during construction.
func WithWarmUp(enabled bool) Option {
	return func(cfg *detectorConfig) {
		cfg.WarmUp = enabled
	}
}

// New creates a new Detector with the provided functional options.
func New(opts ...Option) (*Detector, error) {
	config := &detectorConfig{
		Core:   detector.DefaultConfig(),
		Policy: domain.DefaultBandingPolicy(),
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if config.Normalizer == nil {
		config.Normalizer = normalizer.NewDefaultNormalizer()
	}

	comparator, err := detector.NewCalculator(config.Core, config.Logger, config.Normalizer)
	if err != nil {
		return nil, err
	}

	d := &Detector{
		comparator: comparator,
		logger:     config.Logger,
		policy:     config.Policy,
	}

	if config.WarmUp {
		manager := warmup.NewManager(config.Logger, warmup.DefaultConfig())
		manager.RegisterNormalizer(config.Normalizer)
		manager.RegisterComparator(comparator)
		manager.WarmUp(context.Background())
	}

	return d, nil
}

// Compare computes the similarity between the original and the suspect text
// and extracts the copied passages.
func (d *Detector) Compare(ctx context.Context, original, suspect string) Result {
	return d.comparator.Compute(ctx, original, suspect)
}

// Band returns the report verdict band for an overall similarity score.
func (d *Detector) Band(score float64) string {
	return d.policy.Band(score)
}

// Policy returns the detector's banding policy.
func (d *Detector) Policy() BandingPolicy {
	return d.policy
}
