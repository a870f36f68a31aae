package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_fuzzypath/internal/core/casefold"
	"github.com/baditaflorin/go_fuzzypath/internal/ports"
)

// DefaultNormalizer implements the path normalization steps one after another:
// separator replacement, trailing slash trimming, then a scan that collapses
// slash runs and lowercases everything else.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize returns the normalized form of a path-like text.
func (n *DefaultNormalizer) Normalize(text string) string {
	text = strings.ReplaceAll(text, `\`, "/")

	trimmed := strings.TrimRight(text, "/")
	if trimmed == "" && text != "" {
		// Only slashes: the root slash survives.
		return "/"
	}

	out := make([]byte, 0, len(trimmed))
	slash := false
	for _, r := range trimmed {
		if r == '/' {
			if !slash {
				slash = true
				out = append(out, '/')
			}
			continue
		}
		slash = false
		out = casefold.AppendLower(out, r)
	}
	return string(out)
}
