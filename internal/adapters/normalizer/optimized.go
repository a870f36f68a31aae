package normalizer

import (
	"unicode/utf8"

	"github.com/baditaflorin/go_fuzzypath/internal/core/casefold"
	"github.com/baditaflorin/go_fuzzypath/internal/pool"
	"github.com/baditaflorin/go_fuzzypath/internal/ports"
)

// ASCII decision table entries.
const (
	keep byte = iota
	separator
	lower
)

// ByteNormalizer extends the Normalizer interface with an append-style
// operation that writes into a caller supplied buffer.
type ByteNormalizer interface {
	ports.Normalizer
	AppendNormalized(dst []byte, text string) []byte
}

// OptimizedNormalizer produces the same output as DefaultNormalizer in a
// single pass over the input bytes.
type OptimizedNormalizer struct {
	// Pre-computed decision table for ASCII characters (0-127)
	asciiTable [128]byte

	bytePool *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer
func NewOptimizedNormalizer() ByteNormalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(256),
	}

	for i := 0; i < 128; i++ {
		switch {
		case i == '/' || i == '\\':
			n.asciiTable[i] = separator
		case 'A' <= i && i <= 'Z':
			n.asciiTable[i] = lower
		default:
			n.asciiTable[i] = keep
		}
	}

	return n
}

// Normalize returns the normalized form of a path-like text.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	// Fast path: text that is already normalized is returned as is.
	if n.isNormalizedASCII(text) {
		return text
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	*buffer = n.AppendNormalized((*buffer)[:0], text)
	return string(*buffer)
}

// AppendNormalized appends the normalized form of text to dst.
func (n *OptimizedNormalizer) AppendNormalized(dst []byte, text string) []byte {
	start := len(dst)
	slash := false

	for i := 0; i < len(text); {
		b := text[i]
		if b < utf8.RuneSelf {
			switch n.asciiTable[b] {
			case separator:
				if !slash {
					slash = true
					dst = append(dst, '/')
				}
			case lower:
				slash = false
				dst = append(dst, b+('a'-'A'))
			default:
				slash = false
				dst = append(dst, b)
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		slash = false
		dst = casefold.AppendLower(dst, r)
		i += size
	}

	// Slash runs are already collapsed, so at most one trailing slash is
	// left. It goes unless it is the root slash.
	if len(dst)-start > 1 && dst[len(dst)-1] == '/' {
		dst = dst[:len(dst)-1]
	}
	return dst
}

// isNormalizedASCII reports whether text is pure ASCII and already satisfies
// every normalization rule.
func (n *OptimizedNormalizer) isNormalizedASCII(text string) bool {
	prevSlash := false
	for i := 0; i < len(text); i++ {
		b := text[i]
		if b >= utf8.RuneSelf {
			return false
		}
		switch {
		case b == '\\':
			return false
		case b == '/':
			if prevSlash {
				return false
			}
			prevSlash = true
		case n.asciiTable[b] == lower:
			return false
		default:
			prevSlash = false
		}
	}
	return !prevSlash || text == "/"
}
