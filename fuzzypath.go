// Package fuzzypath provides Path, a lossy representation of a filesystem path
// for quick and dirty fuzzy comparison.
//
// Two paths compare equal when they only differ in:
//
//   - letter case (full Unicode lowercase mapping)
//   - separator direction (backslashes become forward slashes)
//   - repeated separators (collapsed to one)
//   - trailing separators (removed, except for a lone root slash)
//
// Nothing else is resolved. "." and ".." segments are kept, symlinks are not
// followed and the filesystem is never touched. Windows paths with a drive
// letter, UNC paths and absolute POSIX paths do not compare equal to each
// other.
//
// Path deliberately has no comparison with string or any other type. Raw text
// has to go through New first so normalization always takes place.
package fuzzypath

import (
	"hash/maphash"
	"path/filepath"
	"strings"

	"github.com/baditaflorin/go_fuzzypath/internal/adapters/normalizer"
)

var norm = normalizer.NewOptimizedNormalizer()

// Path is a normalized path. The zero value is the empty path.
//
// Path is immutable and comparable: == and Equal agree, and Path can be used
// as a map key.
type Path struct {
	normalized string
}

// New normalizes s and returns it as a Path. It accepts any text, including
// the empty string, and never fails.
func New(s string) Path {
	return Path{normalized: norm.Normalize(s)}
}

// Parse is New with an error result, for call sites that expect a parsing
// function. The error is always nil.
func Parse(s string) (Path, error) {
	return New(s), nil
}

// FromBytes normalizes b. Like New, every byte that is not part of a valid
// UTF-8 sequence becomes one U+FFFD, so FromBytes(b) == New(string(b)).
func FromBytes(b []byte) Path {
	return New(string(b))
}

// FromFilePath converts a platform path to a Path. Invalid UTF-8 is replaced
// the same way New replaces it.
func FromFilePath(p string) Path {
	return New(p)
}

// NewUnchecked wraps s as a Path without normalizing it.
//
// It is a logic error to pass text that New would change: no backslashes, no
// repeated slashes, no trailing slash other than a lone "/", and everything
// lowercase. Comparisons involving such a Path are meaningless. Use it only to
// re-hydrate text that was produced by Path.String.
func NewUnchecked(s string) Path {
	return Path{normalized: s}
}

// String returns the normalized text.
func (p Path) String() string {
	return p.normalized
}

// Bytes returns a copy of the normalized text.
func (p Path) Bytes() []byte {
	return []byte(p.normalized)
}

// FilePath returns the normalized text with forward slashes replaced by the
// platform separator.
func (p Path) FilePath() string {
	return filepath.FromSlash(p.normalized)
}

// IsEmpty reports whether p is the empty path.
func (p Path) IsEmpty() bool {
	return p.normalized == ""
}

// IsRoot reports whether p is the root slash.
func (p Path) IsRoot() bool {
	return p.normalized == "/"
}

// Equal reports whether p and other have the same normalized text.
func (p Path) Equal(other Path) bool {
	return p.normalized == other.normalized
}

// Compare returns -1, 0 or +1 depending on whether p sorts before, equal to or
// after other. Paths are ordered bytewise by their normalized text.
func (p Path) Compare(other Path) int {
	return strings.Compare(p.normalized, other.normalized)
}

// Less reports whether p sorts before other.
func (p Path) Less(other Path) bool {
	return p.normalized < other.normalized
}

// Hash returns the hash of the normalized text under seed.
func (p Path) Hash(seed maphash.Seed) uint64 {
	return maphash.String(seed, p.normalized)
}

// Compare orders two paths. It is suitable for slices.SortFunc.
func Compare(a, b Path) int {
	return a.Compare(b)
}

// Set replaces p with the normalized form of s. Together with String and Type
// it lets a Path be used as a command-line flag value.
func (p *Path) Set(s string) error {
	*p = New(s)
	return nil
}

// Type names the flag value type.
func (p *Path) Type() string {
	return "path"
}
