package benchmark

import (
	"context"
	"strings"
	"testing"

	copydetect "github.com/baditaflorin/go_copy_detect"
	"github.com/baditaflorin/go_copy_detect/internal/adapters/normalizer"
	"github.com/baditaflorin/go_copy_detect/internal/core/detector"
	"github.com/baditaflorin/go_copy_detect/internal/core/tokenizer"
)

// generateDocument builds a document with the given number of sentences so
// the passage extraction path is part of the measurement.
func generateDocument(sentences int) string {
	words := []string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	}

	var sb strings.Builder
	w := 0
	for s := 0; s < sentences; s++ {
		for i := 0; i < 12; i++ {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(words[w%len(words)])
			w++
		}
		sb.WriteString(". ")
	}
	return sb.String()
}

// mutate replaces every tenth word so the documents stay similar but not identical.
func mutate(text string) string {
	words := strings.Fields(text)
	for i := 0; i < len(words); i += 10 {
		words[i] = "altered"
	}
	return strings.Join(words, " ")
}

func benchmarkCompare(b *testing.B, sentences int, opts ...copydetect.Option) {
	d, err := copydetect.New(opts...)
	if err != nil {
		b.Fatalf("failed to create detector: %v", err)
	}

	original := generateDocument(sentences)
	suspect := mutate(original)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.Compare(ctx, original, suspect)
	}
}

func BenchmarkCompareSmall(b *testing.B) {
	benchmarkCompare(b, 5)
}

func BenchmarkCompareMedium(b *testing.B) {
	benchmarkCompare(b, 50)
}

func BenchmarkCompareLarge(b *testing.B) {
	benchmarkCompare(b, 200)
}

func BenchmarkCompareOptimizedNormalizer(b *testing.B) {
	benchmarkCompare(b, 50, copydetect.WithOptimizedNormalizer())
}

func BenchmarkDefaultNormalizer(b *testing.B) {
	n := normalizer.NewDefaultNormalizer()
	text := generateDocument(50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.Normalize(text)
	}
}

func BenchmarkOptimizedNormalizer(b *testing.B) {
	n := normalizer.NewOptimizedNormalizer()
	text := generateDocument(50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.Normalize(text)
	}
}

func BenchmarkSequenceRatio(b *testing.B) {
	original := tokenizer.Normalize(generateDocument(20), true)
	suspect := tokenizer.Normalize(mutate(original), true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = detector.SequenceRatio(original, suspect)
	}
}

func BenchmarkNGramJaccard(b *testing.B) {
	original := tokenizer.Normalize(generateDocument(50), true)
	suspect := tokenizer.Normalize(mutate(original), true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a := tokenizer.NGrams(original, tokenizer.DefaultNGramSize)
		s := tokenizer.NGrams(suspect, tokenizer.DefaultNGramSize)
		_ = detector.Jaccard(a, s)
	}
}
