// Package warmup pre-exercises normalizers and comparators so that buffer
// pools and branch-heavy paths are hot before the first real request.
package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_copy_detect/internal/ports"
)

// Config defines configuration for warming up the system.
type Config struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Number of sample sentences used to build warmup documents
	SampleSentences int
	// Warmup duration limit (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency:     runtime.NumCPU(),
		Iterations:      100,
		SampleSentences: 20,
		Duration:        5 * time.Second,
		ForceGC:         true,
	}
}

// Manager handles system warmup operations.
type Manager struct {
	logger      ports.Logger
	comparators []ports.Comparator
	normalizers []ports.Normalizer
	config      Config
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterComparator adds a comparator to be warmed up.
func (m *Manager) RegisterComparator(c ports.Comparator) {
	m.comparators = append(m.comparators, c)
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (m *Manager) RegisterNormalizer(n ports.Normalizer) {
	m.normalizers = append(m.normalizers, n)
}

// WarmUp runs the warmup process for all registered components.
func (m *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	m.logger.Info("Starting system warmup",
		"components", len(m.comparators)+len(m.normalizers),
		"concurrency", m.config.Concurrency,
		"iterations", m.config.Iterations,
	)

	if m.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.Duration)
		defer cancel()
	}

	original := sampleDocument(m.config.SampleSentences)
	modified := mutateDocument(original, 0.1)
	unrelated := mutateDocument(original, 0.8)

	var wg sync.WaitGroup
	for i := 0; i < m.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < m.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, n := range m.normalizers {
					_ = n.Normalize(original)
				}
				for _, c := range m.comparators {
					switch j % 3 {
					case 0:
						_ = c.Compute(ctx, original, original)
					case 1:
						_ = c.Compute(ctx, original, modified)
					default:
						_ = c.Compute(ctx, original, unrelated)
					}
				}
			}
		}()
	}
	wg.Wait()

	if m.config.ForceGC {
		m.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	m.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

// sampleWords feed the warmup document generator.
var sampleWords = []string{
	"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
	"hello", "world", "lorem", "ipsum", "dolor", "sit", "amet", "consectetur",
	"adipiscing", "elit", "sed", "do", "eiusmod", "tempor", "incididunt",
	"ut", "labore", "et", "dolore", "magna", "aliqua",
}

// sampleDocument builds a document with sentence terminators so the passage
// extraction path is exercised, not just the aggregate scores.
func sampleDocument(sentences int) string {
	const wordsPerSentence = 12

	var sb strings.Builder
	w := 0
	for s := 0; s < sentences; s++ {
		for i := 0; i < wordsPerSentence; i++ {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(sampleWords[w%len(sampleWords)])
			w++
		}
		sb.WriteString(". ")
	}
	return sb.String()
}

// mutateDocument replaces roughly diffRatio of the words to produce a
// document at a known similarity level.
func mutateDocument(original string, diffRatio float64) string {
	replacements := []string{
		"replaced", "modified", "changed", "altered", "updated",
		"different", "unique", "new", "fresh", "novel",
	}

	words := strings.Fields(original)
	changeCount := int(float64(len(words)) * diffRatio)

	mutated := make([]string, len(words))
	copy(mutated, words)
	for i := 0; i < changeCount && i < len(mutated); i++ {
		mutated[i] = replacements[i%len(replacements)]
	}
	return strings.Join(mutated, " ")
}
