package compose

import (
	"unicode"

	"github.com/kbdviz/kbdviz/layout"
)

// Modifier labels by level.
const (
	ModShift      = "Shift"
	ModAltGr      = "AltGr"
	ModAltGrShift = ModAltGr + ChordSeparator + ModShift
)

// maxLevel is the highest level looked at. Anything above AltGr+Shift is
// ignored.
const maxLevel = layout.LevelAltGrShift

func modifierLabel(level int) string {
	switch level {
	case layout.LevelShift:
		return ModShift
	case layout.LevelAltGr:
		return ModAltGr
	case layout.LevelAltGrShift:
		return ModAltGrShift
	}
	return ""
}

// keyView is what the classifier needs to know about one physical key.
type keyView struct {
	name   string
	levels []layout.Keysym // first keysym per level, NoSymbol when empty
}

func readKey(src layout.Source, code layout.Keycode, name string) keyView {
	n := src.LevelCount(code)
	if n > maxLevel+1 {
		n = maxLevel + 1
	}
	kv := keyView{name: name, levels: make([]layout.Keysym, n)}
	for level := range n {
		if syms := src.SymbolsAt(code, level); len(syms) > 0 {
			kv.levels[level] = syms[0]
		}
	}
	return kv
}

func (k keyView) rune(level int) rune {
	if level >= len(k.levels) {
		return 0
	}
	return k.levels[level].Rune()
}

// visibleLabel returns the level-0 character when it is printable ASCII, the
// glyph printed on the keycap.
func (k keyView) visibleLabel() (string, bool) {
	r := k.rune(layout.LevelBase)
	if r > ' ' && r < unicode.MaxASCII {
		return string(r), true
	}
	return "", false
}

// label returns the visible label or falls back to the layout's key name.
func (k keyView) label() string {
	if l, ok := k.visibleLabel(); ok {
		return l
	}
	return k.name
}

// reportable decides whether the character at level is worth listing.
func (k keyView) reportable(level int) (rune, bool) {
	r := k.rune(level)
	if r == 0 || unicode.IsControl(r) || unicode.IsSpace(r) {
		return 0, false
	}
	switch level {
	case layout.LevelBase:
		return r, !(r >= 'a' && r <= 'z')
	case layout.LevelShift:
		return r, !(r >= 'A' && r <= 'Z')
	case layout.LevelAltGr:
		return r, true
	case layout.LevelAltGrShift:
		l2 := k.rune(layout.LevelAltGr)
		return r, !(l2 != 0 && r != l2 && r == unicode.ToUpper(l2))
	}
	return 0, false
}

// deadKey is a dead key found on an AltGr level together with the chord
// that produces it.
type deadKey struct {
	chord string
	name  string
}

// deadKeys returns the dead keys on the AltGr levels. Keys whose base level
// has no visible glyph are skipped.
func (k keyView) deadKeys() []deadKey {
	label, ok := k.visibleLabel()
	if !ok {
		return nil
	}
	var out []deadKey
	for level := layout.LevelAltGr; level < len(k.levels); level++ {
		sym := k.levels[level]
		if sym == layout.NoSymbol || !sym.IsDead() {
			continue
		}
		out = append(out, deadKey{chord: directSequence(modifierLabel(level), label), name: sym.Name()})
	}
	return out
}
