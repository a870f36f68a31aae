package normalizer

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_fuzzypath/internal/ports"
)

// NormalizerType selects a normalization strategy.
type NormalizerType int

const (
	// DefaultNormalizerType applies the normalization steps one by one.
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType normalizes in a single pass with pooled buffers.
	OptimizedNormalizerType
)

// String returns the configuration name of the type.
func (t NormalizerType) String() string {
	switch t {
	case DefaultNormalizerType:
		return "default"
	case OptimizedNormalizerType:
		return "optimized"
	default:
		return fmt.Sprintf("NormalizerType(%d)", int(t))
	}
}

// ParseNormalizerType resolves a configuration name to a NormalizerType.
func ParseNormalizerType(name string) (NormalizerType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "default":
		return DefaultNormalizerType, nil
	case "optimized", "":
		return OptimizedNormalizerType, nil
	default:
		return 0, fmt.Errorf("unknown normalizer %q", name)
	}
}

// NormalizerFactory creates normalizers by type.
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory.
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// CreateNormalizer returns a normalizer of the requested type. Unknown types
// fall back to the optimized normalizer.
func (f *NormalizerFactory) CreateNormalizer(t NormalizerType) ports.Normalizer {
	switch t {
	case DefaultNormalizerType:
		return NewDefaultNormalizer()
	default:
		return NewOptimizedNormalizer()
	}
}
