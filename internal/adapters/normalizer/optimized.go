package normalizer

import (
	"unicode"

	"github.com/baditaflorin/go_copy_detect/internal/pool"
	"github.com/baditaflorin/go_copy_detect/internal/ports"
)

// OptimizedNormalizer implements an optimized normalization strategy with a
// precomputed ASCII decision table and buffer pooling. It produces the same
// output as the default normalizer.
type OptimizedNormalizer struct {
	// Decision table for ASCII characters (0-127):
	// 0 = keep as is, 1 = whitespace (collapse), 2 = convert to lowercase
	asciiTable [128]byte

	bytePool *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer.
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(8192),
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case unicode.IsSpace(r):
			n.asciiTable[i] = 1
		case unicode.IsUpper(r):
			n.asciiTable[i] = 2
		default:
			n.asciiTable[i] = 0
		}
	}

	return n
}

// Normalize collapses whitespace runs to a single space, trims, and
// lowercases the text.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			asciiOnly = false
			break
		}
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}
	*buffer = (*buffer)[:0]

	// Starting in the "last was space" state drops leading whitespace.
	lastWasSpace := true

	if asciiOnly {
		for i := 0; i < len(text); i++ {
			b := text[i]
			switch n.asciiTable[b] {
			case 0:
				*buffer = append(*buffer, b)
				lastWasSpace = false
			case 1:
				if !lastWasSpace {
					*buffer = append(*buffer, ' ')
					lastWasSpace = true
				}
			case 2:
				*buffer = append(*buffer, b+('a'-'A'))
				lastWasSpace = false
			}
		}
		return trimTrailingSpace(*buffer)
	}

	for _, r := range text {
		if r < 128 {
			switch n.asciiTable[r] {
			case 0:
				*buffer = append(*buffer, byte(r))
				lastWasSpace = false
			case 1:
				if !lastWasSpace {
					*buffer = append(*buffer, ' ')
					lastWasSpace = true
				}
			case 2:
				*buffer = append(*buffer, byte(r)+('a'-'A'))
				lastWasSpace = false
			}
			continue
		}

		if unicode.IsSpace(r) {
			if !lastWasSpace {
				*buffer = append(*buffer, ' ')
				lastWasSpace = true
			}
			continue
		}

		lower := unicode.ToLower(r)
		*buffer = append(*buffer, []byte(string(lower))...)
		lastWasSpace = false
	}

	return trimTrailingSpace(*buffer)
}

// trimTrailingSpace copies the buffer to a string, dropping the single
// trailing space a whitespace run at the end of the input leaves behind.
func trimTrailingSpace(b []byte) string {
	if len(b) > 0 && b[len(b)-1] == ' ' {
		b = b[:len(b)-1]
	}
	return string(b)
}
