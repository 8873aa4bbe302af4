package report

import (
	"fmt"
	"io"

	"github.com/pmezard/go-difflib/difflib"
)

// WriteDiff writes a unified diff of the two raw texts, line by line, with
// three lines of context around each change.
func WriteDiff(w io.Writer, originalText, suspectText string) error {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(originalText),
		B:        difflib.SplitLines(suspectText),
		FromFile: "ORIGINAL (Your Work)",
		ToFile:   "SUSPECT (Alleged Copy)",
		Context:  3,
	}
	if err := difflib.WriteUnifiedDiff(w, diff); err != nil {
		return fmt.Errorf("failed to write diff: %w", err)
	}
	return nil
}
