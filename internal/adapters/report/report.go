// Package report renders comparison results for human and machine consumers:
// a colored terminal report, a JSON document, and a unified diff.
package report

import (
	"math"
	"time"

	"github.com/baditaflorin/go_copy_detect/internal/core/domain"
	"github.com/baditaflorin/go_copy_detect/internal/fingerprint"
)

// maxPassages caps the passage list carried by a report.
const maxPassages = 50

// Source describes one compared document for report building.
type Source struct {
	// Name is the display name, usually the file name.
	Name string
	// Path is the full document path, empty for in-memory sources.
	Path string
	// Fingerprint is the document's content fingerprint.
	Fingerprint fingerprint.Fingerprint
	// Seal is the document's truth-seal record, if one exists.
	Seal *fingerprint.SealRecord
}

// Build assembles a report from a comparison result and the two sources.
// Scores are converted to percentages: two decimals for the aggregate
// analysis, one for per-passage ratios.
func Build(result domain.Result, original, suspect Source, policy domain.BandingPolicy) *domain.Report {
	passages := make([]domain.ReportPassage, 0, len(result.Passages))
	for _, p := range result.Passages {
		if len(passages) == maxPassages {
			break
		}
		passages = append(passages, domain.ReportPassage{
			Original:   p.OriginalSentence,
			Suspect:    p.SuspectSentence,
			Similarity: roundTo(p.SimilarityRatio*100, 1),
			Verdict:    p.Verdict,
		})
	}

	return &domain.Report{
		Protocol:    domain.Protocol,
		Type:        "copy_detection_report",
		GeneratedAt: time.Now().UTC(),
		Original:    documentInfo(original, result.OriginalWordCount),
		Suspect:     documentInfo(suspect, result.SuspectWordCount),
		Analysis: domain.Analysis{
			OverallSimilarity:  roundTo(result.OverallSimilarity*100, 2),
			NGramSimilarity:    roundTo(result.NGramSimilarity*100, 2),
			SequenceSimilarity: roundTo(result.SequenceSimilarity*100, 2),
			PassageCount:       len(result.Passages),
			Verdict:            policy.Band(result.OverallSimilarity),
		},
		Passages: passages,
	}
}

func documentInfo(src Source, wordCount int) domain.DocumentInfo {
	info := domain.DocumentInfo{
		Filename:  src.Name,
		Filepath:  src.Path,
		SHA256:    src.Fingerprint.SHA256,
		WordCount: wordCount,
	}
	if src.Seal != nil {
		info.SealedAt = src.Seal.SealedAt
		info.BlockchainAnchors = len(src.Seal.Anchors)
	}
	return info
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
