// Package casefold maps single characters to their lowercase form using the
// full, locale-independent Unicode mapping. A character may expand into more
// than one output character (U+0130 becomes "i" followed by U+0307).
//
// Characters are mapped one at a time, so contextual rules such as the Greek
// final sigma never apply: the result for a rune does not depend on its
// neighbours.
package casefold

import (
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_fuzzypath/internal/pool"
)

// maxExpansion bounds the UTF-8 size of the lowercase form of one rune.
const maxExpansion = 16

var casers = pool.NewCaserPool()

// AppendLower appends the lowercase form of r to dst and returns the extended
// buffer.
func AppendLower(dst []byte, r rune) []byte {
	if r < utf8.RuneSelf {
		if 'A' <= r && r <= 'Z' {
			r += 'a' - 'A'
		}
		return append(dst, byte(r))
	}

	var src [utf8.UTFMax]byte
	n := utf8.EncodeRune(src[:], r)

	var out [maxExpansion]byte
	caser := casers.Get()
	nDst, _, err := caser.Transform(out[:], src[:n], true)
	casers.Put(caser)
	if err != nil {
		return utf8.AppendRune(dst, unicode.ToLower(r))
	}
	return append(dst, out[:nDst]...)
}

// Lower returns the lowercase form of r as a string.
func Lower(r rune) string {
	var buf [maxExpansion]byte
	return string(AppendLower(buf[:0], r))
}
