package layout

import (
	"fmt"
	"sort"
	"strings"
)

// builtinKey is a compact key row entry: XKB key name, keycode and the
// space separated keysym names of each level.
type builtinKey struct {
	name string
	code Keycode
	syms string
}

// Alphanumeric section keycodes (evdev + 8).
var (
	usBase = []builtinKey{
		{"TLDE", 49, "grave asciitilde"},
		{"AE01", 10, "1 exclam"},
		{"AE02", 11, "2 at"},
		{"AE03", 12, "3 numbersign"},
		{"AE04", 13, "4 dollar"},
		{"AE05", 14, "5 percent"},
		{"AE06", 15, "6 asciicircum"},
		{"AE07", 16, "7 ampersand"},
		{"AE08", 17, "8 asterisk"},
		{"AE09", 18, "9 parenleft"},
		{"AE10", 19, "0 parenright"},
		{"AE11", 20, "minus underscore"},
		{"AE12", 21, "equal plus"},
		{"AD01", 24, "q Q"},
		{"AD02", 25, "w W"},
		{"AD03", 26, "e E"},
		{"AD04", 27, "r R"},
		{"AD05", 28, "t T"},
		{"AD06", 29, "y Y"},
		{"AD07", 30, "u U"},
		{"AD08", 31, "i I"},
		{"AD09", 32, "o O"},
		{"AD10", 33, "p P"},
		{"AD11", 34, "bracketleft braceleft"},
		{"AD12", 35, "bracketright braceright"},
		{"AC01", 38, "a A"},
		{"AC02", 39, "s S"},
		{"AC03", 40, "d D"},
		{"AC04", 41, "f F"},
		{"AC05", 42, "g G"},
		{"AC06", 43, "h H"},
		{"AC07", 44, "j J"},
		{"AC08", 45, "k K"},
		{"AC09", 46, "l L"},
		{"AC10", 47, "semicolon colon"},
		{"AC11", 48, "apostrophe quotedbl"},
		{"BKSL", 51, "backslash bar"},
		{"AB01", 52, "z Z"},
		{"AB02", 53, "x X"},
		{"AB03", 54, "c C"},
		{"AB04", 55, "v V"},
		{"AB05", 56, "b B"},
		{"AB06", 57, "n N"},
		{"AB07", 58, "m M"},
		{"AB08", 59, "comma less"},
		{"AB09", 60, "period greater"},
		{"AB10", 61, "slash question"},
		{"SPCE", 65, "space"},
		{"RALT", 108, "ISO_Level3_Shift"},
	}

	// English (US, intl., with AltGr dead keys)
	usAltGrIntl = overlay(usBase, map[string]string{
		"TLDE": "grave asciitilde dead_grave dead_tilde",
		"AE01": "1 exclam onesuperior exclamdown",
		"AE02": "2 at twosuperior dead_doubleacute",
		"AE03": "3 numbersign threesuperior dead_macron",
		"AE04": "4 dollar currency sterling",
		"AE05": "5 percent EuroSign dead_cedilla",
		"AE06": "6 asciicircum dead_circumflex onequarter",
		"AE07": "7 ampersand dead_horn onehalf",
		"AE08": "8 asterisk dead_ogonek threequarters",
		"AE09": "9 parenleft leftsinglequotemark dead_breve",
		"AE10": "0 parenright rightsinglequotemark dead_abovering",
		"AE11": "minus underscore yen dead_belowdot",
		"AE12": "equal plus multiply division",
		"AD01": "q Q adiaeresis Adiaeresis",
		"AD02": "w W aring Aring",
		"AD03": "e E eacute Eacute",
		"AD04": "r R ediaeresis Ediaeresis",
		"AD05": "t T thorn THORN",
		"AD06": "y Y udiaeresis Udiaeresis",
		"AD07": "u U uacute Uacute",
		"AD08": "i I iacute Iacute",
		"AD09": "o O oacute Oacute",
		"AD10": "p P odiaeresis Odiaeresis",
		"AD11": "bracketleft braceleft guillemotleft leftdoublequotemark",
		"AD12": "bracketright braceright guillemotright rightdoublequotemark",
		"AC01": "a A aacute Aacute",
		"AC02": "s S ssharp section",
		"AC03": "d D eth ETH",
		"AC09": "l L oslash Oslash",
		"AC10": "semicolon colon paragraph degree",
		"AC11": "apostrophe quotedbl dead_acute dead_diaeresis",
		"BKSL": "backslash bar notsign brokenbar",
		"AB01": "z Z ae AE",
		"AB02": "x X oe OE",
		"AB03": "c C copyright cent",
		"AB04": "v V registered registered",
		"AB06": "n N ntilde Ntilde",
		"AB07": "m M mu mu",
		"AB08": "comma less ccedilla Ccedilla",
		"AB09": "period greater dead_abovedot dead_caron",
		"AB10": "slash question questiondown dead_hook",
	})

	// German (T3-less basic variant)
	de = overlay(usBase, map[string]string{
		"TLDE": "dead_circumflex degree notsign notsign",
		"AE02": "2 quotedbl twosuperior U215B",
		"AE03": "3 section threesuperior sterling",
		"AE04": "4 dollar onequarter currency",
		"AE06": "6 ampersand notsign U215D",
		"AE07": "7 slash braceleft U215E",
		"AE08": "8 parenleft bracketleft trademark",
		"AE09": "9 parenright bracketright plusminus",
		"AE10": "0 equal braceright degree",
		"AE11": "ssharp question backslash questiondown",
		"AE12": "dead_acute dead_grave dead_cedilla dead_ogonek",
		"AD01": "q Q at U03A9",
		"AD02": "w W lstroke Lstroke",
		"AD03": "e E EuroSign EuroSign",
		"AD04": "r R paragraph registered",
		"AD05": "t T tslash Tslash",
		"AD06": "z Z leftarrow yen",
		"AD07": "u U downarrow uparrow",
		"AD08": "i I rightarrow idotless",
		"AD09": "o O oslash Oslash",
		"AD10": "p P thorn THORN",
		"AD11": "udiaeresis Udiaeresis dead_diaeresis dead_abovering",
		"AD12": "plus asterisk asciitilde macron",
		"AC01": "a A ae AE",
		"AC02": "s S U017F U1E9E",
		"AC03": "d D eth ETH",
		"AC04": "f F dstroke ordfeminine",
		"AC05": "g G eng ENG",
		"AC06": "h H hstroke Hstroke",
		"AC07": "j J dead_belowdot dead_abovedot",
		"AC08": "k K U0138 ampersand",
		"AC09": "l L lstroke Lstroke",
		"AC10": "odiaeresis Odiaeresis dead_doubleacute dead_belowdot",
		"AC11": "adiaeresis Adiaeresis dead_circumflex dead_caron",
		"BKSL": "numbersign apostrophe rightsinglequotemark dead_breve",
		"AB01": "y Y guillemotright U203A",
		"AB02": "x X guillemotleft U2039",
		"AB03": "c C cent copyright",
		"AB04": "v V doublelowquotemark singlelowquotemark",
		"AB05": "b B leftdoublequotemark leftsinglequotemark",
		"AB06": "n N rightdoublequotemark rightsinglequotemark",
		"AB07": "m M mu masculine",
		"AB08": "comma semicolon periodcentered multiply",
		"AB09": "period colon U2026 division",
		"AB10": "minus underscore endash emdash",
	})

	// French (AZERTY), letters and the number row only
	fr = overlay(usBase, map[string]string{
		"TLDE": "twosuperior asciitilde",
		"AE01": "ampersand 1",
		"AE02": "eacute 2 asciitilde Eacute",
		"AE03": "quotedbl 3 numbersign",
		"AE04": "apostrophe 4 braceleft",
		"AE05": "parenleft 5 bracketleft",
		"AE06": "minus 6 bar",
		"AE07": "egrave 7 grave Egrave",
		"AE08": "underscore 8 backslash",
		"AE09": "ccedilla 9 asciicircum Ccedilla",
		"AE10": "agrave 0 at Agrave",
		"AE11": "parenright degree bracketright",
		"AE12": "equal plus braceright",
		"AD01": "a A ae AE",
		"AD02": "z Z",
		"AD03": "e E EuroSign",
		"AD09": "o O oe OE",
		"AD11": "dead_circumflex dead_diaeresis",
		"AD12": "dollar sterling currency",
		"AC01": "q Q",
		"AC10": "m M",
		"AC11": "ugrave percent",
		"BKSL": "asterisk mu",
		"AB01": "w W",
		"AB07": "comma question",
		"AB08": "semicolon period",
		"AB09": "colon slash",
		"AB10": "exclam section",
	})
)

var builtins = map[string][]builtinKey{
	"us":            usBase,
	"us-altgr-intl": usAltGrIntl,
	"de":            de,
	"fr":            fr,
}

// Builtin returns one of the canned layouts ("us", "us-altgr-intl", "de", "fr").
func Builtin(name string) (*Static, error) {
	rows, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown builtin layout %q (available: %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	keys := make([]StaticKey, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, StaticKey{Code: r.code, Name: r.name, Symbols: strings.Fields(r.syms)})
	}
	return NewStatic(name, keys)
}

// BuiltinNames lists the canned layouts in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func overlay(base []builtinKey, levels map[string]string) []builtinKey {
	out := make([]builtinKey, len(base))
	copy(out, base)
	for i := range out {
		if syms, ok := levels[out[i].name]; ok {
			out[i].syms = syms
		}
	}
	return out
}
