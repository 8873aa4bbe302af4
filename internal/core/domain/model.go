package domain

// Verdict classifies a matched passage by how faithfully it was copied.
type Verdict string

const (
	// VerdictExactCopy marks a passage reproduced nearly character for character.
	VerdictExactCopy Verdict = "EXACT_COPY"
	// VerdictModifiedCopy marks a passage altered just enough to disguise the copy.
	VerdictModifiedCopy Verdict = "MODIFIED_COPY"
)

// PassageMatch records one original/suspect sentence pair whose similarity
// crossed the passage threshold. Immutable once produced.
type PassageMatch struct {
	// OriginalSentence is the verbatim (trimmed, non-normalized) sentence from the original document.
	OriginalSentence string
	// SuspectSentence is the verbatim (trimmed, non-normalized) sentence from the suspect document.
	SuspectSentence string
	// SimilarityRatio is the sequence-matcher ratio between the two normalized sentences, in [0,1].
	SimilarityRatio float64
	// Verdict is EXACT_COPY above the exact threshold, MODIFIED_COPY otherwise.
	Verdict Verdict
}

// Result holds the outcome of one document comparison.
type Result struct {
	// Name of the metric.
	Name string
	// NGramSimilarity is the Jaccard similarity of the two documents' word n-gram sets.
	NGramSimilarity float64
	// SequenceSimilarity is the matching-blocks ratio over the full normalized texts.
	SequenceSimilarity float64
	// OverallSimilarity is the weighted combination of the two scores.
	OverallSimilarity float64
	// Passages lists matched sentence pairs, grouped by original-sentence scan order.
	Passages []PassageMatch
	// OriginalWordCount is the word count of the original text.
	OriginalWordCount int
	// SuspectWordCount is the word count of the suspect text.
	SuspectWordCount int
	// Flagged indicates whether OverallSimilarity exceeded the significance threshold.
	Flagged bool
	// Threshold is the significance threshold used to set Flagged.
	Threshold float64
	// Details holds additional diagnostic information.
	Details map[string]interface{}
}

// BandingPolicy maps an overall similarity score onto a human verdict band.
// The thresholds are exclusive on the lower bound: a score exactly at a
// boundary falls into the lower band.
type BandingPolicy struct {
	HighlyLikely float64
	Significant  float64
	Some         float64
}

// DefaultBandingPolicy returns the banding thresholds used by existing reports.
func DefaultBandingPolicy() BandingPolicy {
	return BandingPolicy{
		HighlyLikely: 0.8,
		Significant:  0.5,
		Some:         0.3,
	}
}

// Band returns the verdict band for an overall similarity score.
func (p BandingPolicy) Band(score float64) string {
	switch {
	case score > p.HighlyLikely:
		return "HIGHLY LIKELY PLAGIARISM"
	case score > p.Significant:
		return "SIGNIFICANT OVERLAP"
	case score > p.Some:
		return "SOME SIMILARITIES"
	default:
		return "LOW SIMILARITY"
	}
}
