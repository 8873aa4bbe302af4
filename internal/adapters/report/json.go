package report

import (
	"encoding/json"
	"io"

	"github.com/baditaflorin/go_copy_detect/internal/core/domain"
	"github.com/baditaflorin/go_copy_detect/internal/ports"
)

// JSONReporter renders the report as an indented JSON document.
type JSONReporter struct{}

// NewJSONReporter creates a JSON report renderer.
func NewJSONReporter() ports.Reporter {
	return &JSONReporter{}
}

// Render writes the report as JSON.
func (j *JSONReporter) Render(w io.Writer, report *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
