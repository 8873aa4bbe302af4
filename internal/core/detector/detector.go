// Package detector implements the copy-detection comparator: an aggregate
// similarity score built from word n-gram Jaccard overlap and a character
// sequence-matcher ratio, plus sentence-level extraction of copied passages.
package detector

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/baditaflorin/go_copy_detect/internal/core/domain"
	"github.com/baditaflorin/go_copy_detect/internal/core/tokenizer"
	"github.com/baditaflorin/go_copy_detect/internal/ports"
)

// Config holds configuration for the copy-detection comparator.
type Config struct {
	// NGramSize is the word n-gram window length.
	NGramSize int
	// MinWords is the minimum normalized word count for an original sentence
	// to be considered for passage extraction.
	MinWords int
	// NGramWeight and SequenceWeight combine the two scores into the overall
	// similarity. They must sum to 1.
	NGramWeight    float64
	SequenceWeight float64
	// PassageThreshold is the sentence-pair ratio above which a passage is emitted.
	PassageThreshold float64
	// ExactThreshold is the ratio above which a passage is an exact copy.
	ExactThreshold float64
	// Threshold is the overall-similarity level above which the result is flagged.
	Threshold float64
}

// DefaultConfig returns the default comparator configuration.
func DefaultConfig() Config {
	return Config{
		NGramSize:        tokenizer.DefaultNGramSize,
		MinWords:         10,
		NGramWeight:      0.4,
		SequenceWeight:   0.6,
		PassageThreshold: 0.85,
		ExactThreshold:   0.95,
		Threshold:        0.5,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.NGramSize < 1 {
		return errors.New("ngram size must be at least 1")
	}
	if c.MinWords < 0 {
		return errors.New("min words must not be negative")
	}
	if c.NGramWeight < 0 || c.SequenceWeight < 0 {
		return errors.New("weights must not be negative")
	}
	if math.Abs(c.NGramWeight+c.SequenceWeight-1.0) > 1e-9 {
		return errors.New("ngram and sequence weights must sum to 1")
	}
	if c.PassageThreshold < 0 || c.PassageThreshold > 1 {
		return errors.New("passage threshold must be between 0 and 1")
	}
	if c.ExactThreshold < c.PassageThreshold || c.ExactThreshold > 1 {
		return errors.New("exact threshold must be between the passage threshold and 1")
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.New("threshold must be between 0 and 1")
	}
	return nil
}

// Calculator implements the copy-detection comparison.
type Calculator struct {
	config     Config
	logger     ports.Logger
	normalizer ports.Normalizer
}

// NewCalculator creates a new copy-detection calculator.
func NewCalculator(config Config, logger ports.Logger, normalizer ports.Normalizer) (*Calculator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Calculator{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
	}, nil
}

// Jaccard returns |A∩B| / |A∪B| for two n-gram sets. Two empty sets are
// fully similar; exactly one empty set means no similarity. Commutative.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// SequenceRatio returns the character-level matching-blocks similarity ratio
// in [0,1] between two strings: twice the number of matching characters over
// the total character count, 1.0 only for identical strings.
func SequenceRatio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

// splitRunes splits a string into one-rune strings for the sequence matcher.
func splitRunes(s string) []string {
	return strings.Split(s, "")
}

// Compute compares the suspect text against the original and returns the
// aggregate scores plus the extracted passage matches. It is total over any
// pair of strings and deterministic: identical inputs yield identical results.
func (c *Calculator) Compute(ctx context.Context, original, suspect string) domain.Result {
	c.logger.Debug("Starting copy detection",
		"original_bytes", len(original),
		"suspect_bytes", len(suspect),
	)

	details := make(map[string]interface{})

	normalizedOriginal := c.normalizer.Normalize(original)
	normalizedSuspect := c.normalizer.Normalize(suspect)

	originalWords := tokenizer.WordCount(normalizedOriginal)
	suspectWords := tokenizer.WordCount(normalizedSuspect)

	ngramSim := Jaccard(
		tokenizer.NGrams(normalizedOriginal, c.config.NGramSize),
		tokenizer.NGrams(normalizedSuspect, c.config.NGramSize),
	)
	seqSim := SequenceRatio(normalizedOriginal, normalizedSuspect)
	overall := c.config.NGramWeight*ngramSim + c.config.SequenceWeight*seqSim

	c.logger.Debug("Computed aggregate scores",
		"ngram_similarity", ngramSim,
		"sequence_similarity", seqSim,
		"overall_similarity", overall,
	)

	// Check for context cancellation before the quadratic passage scan.
	select {
	case <-ctx.Done():
		c.logger.Error("Computation cancelled", "error", ctx.Err())
		details["error"] = "computation cancelled"
		return domain.Result{
			Name:    "copy_detection",
			Details: details,
		}
	default:
		// continue
	}

	passages := c.extractPassages(original, suspect)

	flagged := overall > c.config.Threshold

	details["original_word_count"] = originalWords
	details["suspect_word_count"] = suspectWords
	details["min_words"] = c.config.MinWords
	details["ngram_size"] = c.config.NGramSize
	details["threshold"] = c.config.Threshold

	c.logger.Debug("Computed copy detection result",
		"overall_similarity", overall,
		"passages", len(passages),
		"flagged", flagged,
	)

	return domain.Result{
		Name:               "copy_detection",
		NGramSimilarity:    ngramSim,
		SequenceSimilarity: seqSim,
		OverallSimilarity:  overall,
		Passages:           passages,
		OriginalWordCount:  originalWords,
		SuspectWordCount:   suspectWords,
		Flagged:            flagged,
		Threshold:          c.config.Threshold,
		Details:            details,
	}
}

// extractPassages scans every qualifying original sentence against every
// suspect sentence and collects the pairs whose normalized forms match above
// the passage threshold. Scan order is fixed (outer original, inner suspect)
// so the output order is deterministic. Only the original side carries the
// minimum word-count filter; a short suspect sentence can still match a
// qualifying original sentence.
func (c *Calculator) extractPassages(original, suspect string) []domain.PassageMatch {
	originalSentences := tokenizer.SplitSentences(original)
	suspectSentences := tokenizer.SplitSentences(suspect)

	// Normalize suspect sentences once; the inner loop reuses them.
	normalizedSuspects := make([]string, len(suspectSentences))
	for i, s := range suspectSentences {
		normalizedSuspects[i] = c.normalizer.Normalize(s)
	}

	var passages []domain.PassageMatch
	for _, origSent := range originalSentences {
		origClean := c.normalizer.Normalize(origSent)
		if tokenizer.WordCount(origClean) < c.config.MinWords {
			continue
		}

		for j, suspSent := range suspectSentences {
			ratio := SequenceRatio(origClean, normalizedSuspects[j])
			if ratio <= c.config.PassageThreshold {
				continue
			}

			verdict := domain.VerdictModifiedCopy
			if ratio > c.config.ExactThreshold {
				verdict = domain.VerdictExactCopy
			}
			passages = append(passages, domain.PassageMatch{
				OriginalSentence: strings.TrimSpace(origSent),
				SuspectSentence:  strings.TrimSpace(suspSent),
				SimilarityRatio:  ratio,
				Verdict:          verdict,
			})
		}
	}

	return passages
}
