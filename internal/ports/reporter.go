package ports

import (
	"io"

	"github.com/baditaflorin/go_copy_detect/internal/core/domain"
)

// Reporter renders a comparison report to a writer.
type Reporter interface {
	Render(w io.Writer, report *domain.Report) error
}
