package layout

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Keysym is an X keyboard symbol as found in XKB keymaps.
type Keysym uint32

// Special keysym values.
const (
	NoSymbol   Keysym = 0x000000
	VoidSymbol Keysym = 0xffffff

	unicodeOffset Keysym = 0x01000000
	unicodeMin    Keysym = 0x01000100
	unicodeMax    Keysym = 0x0110ffff

	deadMin Keysym = 0xfe50
	deadMax Keysym = 0xfe93
)

// deadPrefix marks a keysym name as a dead (combining) key.
const deadPrefix = "dead_"

// Rune returns the Unicode code point produced by the keysym, or 0 when the
// keysym does not produce text (modifiers, dead keys, function keys).
func (k Keysym) Rune() rune {
	switch {
	case k >= 0x20 && k <= 0x7e, k >= 0xa0 && k <= 0xff:
		return rune(k)
	case k >= unicodeMin && k <= unicodeMax:
		return rune(k - unicodeOffset)
	}
	if r, ok := keysymRunes[k]; ok {
		return r
	}
	return 0
}

// Name returns the canonical keysym name, "U<hex>" for unnamed Unicode
// keysyms or a hexadecimal literal for anything else.
func (k Keysym) Name() string {
	if name, ok := keysymNames[k]; ok {
		return name
	}
	if k >= unicodeMin && k <= unicodeMax {
		return fmt.Sprintf("U%04X", uint32(k-unicodeOffset))
	}
	return fmt.Sprintf("%#x", uint32(k))
}

// IsDead reports whether the keysym is a dead key.
func (k Keysym) IsDead() bool {
	if k >= deadMin && k <= deadMax {
		return true
	}
	return strings.HasPrefix(k.Name(), deadPrefix)
}

func (k Keysym) String() string { return k.Name() }

// KeysymFromRune returns the keysym that produces r. Latin-1 code points map
// to themselves, named keysyms are preferred over the generic Unicode form.
func KeysymFromRune(r rune) Keysym {
	switch {
	case r >= 0x20 && r <= 0x7e, r >= 0xa0 && r <= 0xff:
		return Keysym(r)
	case r <= 0 || r > utf8.MaxRune:
		return NoSymbol
	}
	if k, ok := runeKeysyms[r]; ok {
		return k
	}
	return unicodeOffset + Keysym(r)
}

// KeysymFromName resolves a keysym name as written in XKB files. Besides
// named keysyms it accepts "U20AC" Unicode names and "0x..." literals.
func KeysymFromName(name string) (Keysym, bool) {
	if name == "" {
		return NoSymbol, false
	}
	if k, ok := nameKeysyms[name]; ok {
		return k, true
	}
	if len(name) > 1 && name[0] == 'U' {
		if cp, err := strconv.ParseUint(name[1:], 16, 32); err == nil && cp <= utf8.MaxRune {
			return KeysymFromRune(rune(cp)), true
		}
	}
	if strings.HasPrefix(name, "0x") || strings.HasPrefix(name, "0X") {
		if v, err := strconv.ParseUint(name[2:], 16, 32); err == nil {
			return Keysym(v), true
		}
	}
	return NoSymbol, false
}

// ParseSymbol resolves a symbol written in a layout description: either a
// keysym name or a single literal character. An empty string is NoSymbol.
func ParseSymbol(s string) (Keysym, error) {
	if s == "" {
		return NoSymbol, nil
	}
	if k, ok := KeysymFromName(s); ok {
		return k, nil
	}
	if r, size := utf8.DecodeRuneInString(s); r != utf8.RuneError && size == len(s) {
		return KeysymFromRune(r), nil
	}
	return NoSymbol, fmt.Errorf("unknown keysym %q", s)
}
