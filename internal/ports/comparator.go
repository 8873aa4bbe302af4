package ports

import (
	"context"

	"github.com/baditaflorin/go_copy_detect/internal/core/domain"
)

// Comparator defines the interface for comparing two documents for copied content.
type Comparator interface {
	Compute(ctx context.Context, original, suspect string) domain.Result
}
