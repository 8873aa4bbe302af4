// Package tokenizer converts raw document text into the canonical comparable
// forms consumed by the detector: normalized text, sentences, and word n-grams.
package tokenizer

import (
	"regexp"
	"strings"
)

// DefaultNGramSize is the default length of word n-grams.
const DefaultNGramSize = 5

// sentenceDelim matches one or more consecutive sentence terminators.
var sentenceDelim = regexp.MustCompile(`[.!?]+`)

// Normalize lowercases and trims the text. When collapseWhitespace is true,
// every maximal run of whitespace is first replaced with a single space.
// Total over any input; normalizing already-normalized text is a no-op.
func Normalize(text string, collapseWhitespace bool) string {
	if collapseWhitespace {
		text = strings.Join(strings.Fields(text), " ")
	}
	return strings.ToLower(strings.TrimSpace(text))
}

// SplitSentences splits text on runs of '.', '!' or '?', discarding the
// delimiters. Empty fragments are retained; callers filter by word count.
// Text with no terminators comes back as a single-element slice.
func SplitSentences(text string) []string {
	return sentenceDelim.Split(text, -1)
}

// NGrams returns the set of all length-n contiguous word windows of text,
// split on whitespace. Each window is keyed by its space-joined words, which
// is injective because words contain no whitespace. A text with fewer than n
// words yields a one-element set holding the full word tuple, so very short
// texts still produce one comparable unit.
func NGrams(text string, n int) map[string]struct{} {
	words := strings.Fields(text)
	if len(words) < n {
		return map[string]struct{}{strings.Join(words, " "): {}}
	}
	set := make(map[string]struct{}, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		set[strings.Join(words[i:i+n], " ")] = struct{}{}
	}
	return set
}

// WordCount reports the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
