package compose

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// baseOverrides covers characters that have no canonical decomposition.
var baseOverrides = map[rune]rune{
	'€': 'e',
	'£': 'l',
	'¥': 'y',
	'¢': 'c',
	'æ': 'a',
	'œ': 'o',
	'ß': 's',
	'ð': 'd',
	'þ': 't',
	'ø': 'o',
	'ł': 'l',
	'đ': 'd',
	'ħ': 'h',
	'ŧ': 't',
}

// BaseLetter returns the lowercase ASCII letter r is indexed under. The
// first code point of the NFD decomposition wins; characters without a
// usable decomposition go through a small override table. ok is false when
// r has no base letter.
func BaseLetter(r rune) (rune, bool) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	first, _ := utf8.DecodeRune(norm.NFD.Bytes(buf[:n]))
	switch {
	case first >= 'a' && first <= 'z':
		return first, true
	case first >= 'A' && first <= 'Z':
		return first + ('a' - 'A'), true
	}
	base, ok := baseOverrides[r]
	return base, ok
}
