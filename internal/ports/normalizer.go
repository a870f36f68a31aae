package ports

// Normalizer defines the interface for path normalization.
type Normalizer interface {
	Normalize(text string) string
}
