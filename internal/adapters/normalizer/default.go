package normalizer

import (
	"github.com/baditaflorin/go_copy_detect/internal/core/tokenizer"
	"github.com/baditaflorin/go_copy_detect/internal/ports"
)

// DefaultNormalizer implements the default text normalization strategy:
// collapse whitespace runs to a single space, trim, and lowercase.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize returns the canonical comparable form of text.
func (n *DefaultNormalizer) Normalize(text string) string {
	return tokenizer.Normalize(text, true)
}
