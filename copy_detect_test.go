package copydetect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareWithDefaults(t *testing.T) {
	detector, err := New()
	require.NoError(t, err)

	// Test cases with varying degrees of copying.
	tests := []struct {
		name        string
		original    string
		suspect     string
		wantFlagged bool
		wantBand    string
	}{
		{
			name:        "identical documents",
			original:    "The quick brown fox jumps over the lazy dog near the old river bank today.",
			suspect:     "The quick brown fox jumps over the lazy dog near the old river bank today.",
			wantFlagged: true,
			wantBand:    "HIGHLY LIKELY PLAGIARISM",
		},
		{
			name:        "lightly modified copy",
			original:    "The quick brown fox jumps over the lazy dog near the old river bank today.",
			suspect:     "The quick brown fox leaps over the lazy dog near the ancient river bank today.",
			wantFlagged: true,
		},
		{
			name:        "unrelated documents",
			original:    "Astronomy concerns celestial objects like planets, comets and distant galaxies.",
			suspect:     "Cooking pasta requires salted water, patience and a reliable kitchen timer.",
			wantFlagged: false,
		},
		{
			name:        "both empty",
			original:    "",
			suspect:     "",
			wantFlagged: true,
			wantBand:    "HIGHLY LIKELY PLAGIARISM",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := detector.Compare(context.Background(), tc.original, tc.suspect)

			assert.Equal(t, tc.wantFlagged, result.Flagged,
				"overall=%v details=%v", result.OverallSimilarity, result.Details)
			if tc.wantBand != "" {
				assert.Equal(t, tc.wantBand, detector.Band(result.OverallSimilarity))
			}
		})
	}
}

func TestCompareIdentityScores(t *testing.T) {
	detector, err := New()
	require.NoError(t, err)

	text := "Some document with enough words to form sentences. It even has two of them!"
	result := detector.Compare(context.Background(), text, text)

	assert.Equal(t, 1.0, result.NGramSimilarity)
	assert.Equal(t, 1.0, result.SequenceSimilarity)
	assert.Equal(t, 1.0, result.OverallSimilarity)
}

func TestCompareEmptyDocuments(t *testing.T) {
	detector, err := New()
	require.NoError(t, err)

	result := detector.Compare(context.Background(), "", "")

	assert.Equal(t, 1.0, result.OverallSimilarity)
	assert.Empty(t, result.Passages)
}

func TestOptions(t *testing.T) {
	t.Run("invalid weights are rejected", func(t *testing.T) {
		_, err := New(WithWeights(0.9, 0.5))
		assert.Error(t, err)
	})

	t.Run("invalid ngram size is rejected", func(t *testing.T) {
		_, err := New(WithNGramSize(0))
		assert.Error(t, err)
	})

	t.Run("min words zero treats every sentence as a candidate", func(t *testing.T) {
		detector, err := New(WithMinWords(0))
		require.NoError(t, err)

		result := detector.Compare(context.Background(), "tiny match.", "tiny match.")
		assert.NotEmpty(t, result.Passages)
	})

	t.Run("custom banding policy", func(t *testing.T) {
		detector, err := New(WithBandingPolicy(BandingPolicy{
			HighlyLikely: 0.99,
			Significant:  0.98,
			Some:         0.97,
		}))
		require.NoError(t, err)

		assert.Equal(t, "LOW SIMILARITY", detector.Band(0.9))
	})

	t.Run("optimized normalizer matches default scoring", func(t *testing.T) {
		defaultDetector, err := New()
		require.NoError(t, err)
		optimizedDetector, err := New(WithOptimizedNormalizer())
		require.NoError(t, err)

		original := "The Quick   Brown Fox jumps over the lazy dog near the river bank."
		suspect := "the quick brown fox JUMPS over the lazy dog near the river bank."

		a := defaultDetector.Compare(context.Background(), original, suspect)
		b := optimizedDetector.Compare(context.Background(), original, suspect)
		assert.Equal(t, a.OverallSimilarity, b.OverallSimilarity)
		assert.Equal(t, a.Passages, b.Passages)
	})
}

func TestCompareConcurrent(t *testing.T) {
	detector, err := New()
	require.NoError(t, err)

	original := "A shared detector instance is safe for concurrent use because no state is shared across calls."
	suspect := "A shared detector instance is safe for concurrent use because nothing is shared between calls."

	reference := detector.Compare(context.Background(), original, suspect)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			result := detector.Compare(context.Background(), original, suspect)
			assert.Equal(t, reference, result)
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
