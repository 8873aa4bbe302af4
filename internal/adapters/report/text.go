package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/baditaflorin/go_copy_detect/internal/core/domain"
	"github.com/baditaflorin/go_copy_detect/internal/ports"
)

const (
	reportWidth = 78
	// textPassageLimit is how many passages the terminal report shows in full.
	textPassageLimit = 10
	// excerptRunes truncates quoted sentences in the terminal report.
	excerptRunes = 100
)

// TextReporter renders a formatted terminal report with colored verdicts.
type TextReporter struct {
	// NoColor disables ANSI escapes in the output.
	NoColor bool
}

// NewTextReporter creates a terminal report renderer.
func NewTextReporter(noColor bool) ports.Reporter {
	return &TextReporter{NoColor: noColor}
}

// Render writes the report as formatted text.
func (t *TextReporter) Render(w io.Writer, report *domain.Report) error {
	bar := strings.Repeat("=", reportWidth)
	rule := strings.Repeat("-", reportWidth)

	verdictColor := t.verdictColor(report.Analysis.Verdict)

	fmt.Fprintln(w)
	fmt.Fprintln(w, bar)
	fmt.Fprintln(w, center("COPY DETECTION REPORT", reportWidth))
	fmt.Fprintln(w, bar)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "FILES ANALYZED")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  ORIGINAL: %s\n", report.Original.Filename)
	fmt.Fprintf(w, "  SHA-256:  %s\n", report.Original.SHA256)
	if report.Original.SealedAt != "" {
		fmt.Fprintf(w, "  SEALED:   %s\n", report.Original.SealedAt)
	}
	if report.Original.BlockchainAnchors > 0 {
		fmt.Fprintf(w, "  ANCHORED: %d blockchain(s)\n", report.Original.BlockchainAnchors)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  SUSPECT:  %s\n", report.Suspect.Filename)
	fmt.Fprintf(w, "  SHA-256:  %s\n", report.Suspect.SHA256)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SIMILARITY ANALYSIS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Overall Similarity:  %s\n", verdictColor.Sprintf("%.1f%%", report.Analysis.OverallSimilarity))
	fmt.Fprintf(w, "  N-gram Similarity:   %.1f%%\n", report.Analysis.NGramSimilarity)
	fmt.Fprintf(w, "  Sequence Similarity: %.1f%%\n", report.Analysis.SequenceSimilarity)
	fmt.Fprintf(w, "  Verdict: %s\n", verdictColor.Sprint(report.Analysis.Verdict))
	fmt.Fprintln(w)

	if len(report.Passages) > 0 {
		fmt.Fprintf(w, "COPIED PASSAGES DETECTED: %d\n", report.Analysis.PassageCount)
		fmt.Fprintln(w, rule)
		for i, passage := range report.Passages {
			if i == textPassageLimit {
				break
			}
			fmt.Fprintf(w, "\n  [%d] %s (%.1f%% match)\n", i+1, passage.Verdict, passage.Similarity)
			fmt.Fprintf(w, "      ORIGINAL: %q\n", excerpt(passage.Original))
			fmt.Fprintf(w, "      SUSPECT:  %q\n", excerpt(passage.Suspect))
		}
		if report.Analysis.PassageCount > textPassageLimit {
			fmt.Fprintf(w, "\n  ... and %d more passages\n", report.Analysis.PassageCount-textPassageLimit)
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "NO COPIED PASSAGES DETECTED")
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "  The suspect document may have been heavily modified.")
		fmt.Fprintln(w, "  Check the diff output for a detailed comparison.")
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "FOR LEGAL USE")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "  This report provides evidence of textual similarity.")
	fmt.Fprintln(w, "  Combined with a timestamp proof of the original, it establishes:")
	fmt.Fprintln(w, "    1. WHAT: Specific passages that were copied")
	fmt.Fprintln(w, "    2. WHEN: The original existed before the suspect")
	fmt.Fprintln(w, "    3. HOW MUCH: Quantified similarity percentage")
	fmt.Fprintln(w)
	fmt.Fprintln(w, bar)
	fmt.Fprintln(w)

	return nil
}

// verdictColor picks the verdict color: red for the top band, yellow for the
// middle bands, green for low similarity.
func (t *TextReporter) verdictColor(verdict string) *color.Color {
	var c *color.Color
	switch verdict {
	case "HIGHLY LIKELY PLAGIARISM":
		c = color.New(color.FgRed)
	case "LOW SIMILARITY":
		c = color.New(color.FgGreen)
	default:
		c = color.New(color.FgYellow)
	}
	if t.NoColor {
		c.DisableColor()
	}
	return c
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= excerptRunes {
		return s
	}
	return string(runes[:excerptRunes]) + "..."
}
