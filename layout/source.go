// Package layout describes physical keyboard layouts: which keysym each
// physical key produces at each modifier level.
//
// Two implementations of Source are provided. Keymap is parsed from the
// compiled XKB keymap text a compositor or xkbcli hands out, Static is a
// small in-memory table loaded from Go literals or JSON/YAML/TOML files.
package layout

// Keycode identifies a physical key. XKB keycodes are evdev codes plus 8.
type Keycode uint32

// Default XKB keycode bounds.
const (
	MinKeycode Keycode = 8
	MaxKeycode Keycode = 255
)

// Modifier levels used by the compose index. Higher levels exist in some
// layouts but are not interpreted.
const (
	LevelBase = iota
	LevelShift
	LevelAltGr
	LevelAltGrShift
)

// Source is a read-only view of a keyboard layout.
type Source interface {
	// KeyRange returns the inclusive range of keycodes that may be named.
	KeyRange() (min, max Keycode)
	// KeyName returns the layout's internal name for the key ("AD01").
	// ok is false for unnamed slots.
	KeyName(code Keycode) (name string, ok bool)
	// LevelCount returns the number of shift levels of the key in the
	// first group.
	LevelCount(code Keycode) int
	// SymbolsAt returns the keysyms produced at level, usually zero or one.
	SymbolsAt(code Keycode, level int) []Keysym
}

// Named is implemented by sources that carry a human readable layout name.
type Named interface {
	Name() string
}

// NameOf returns the layout name of src, or "" when it has none.
func NameOf(src Source) string {
	if n, ok := src.(Named); ok {
		return n.Name()
	}
	return ""
}
