package layout

// asciiNames lists keysym names for 0x20..0x7e. Letters and digits are their
// own names.
var asciiNames = [...]string{
	"space", "exclam", "quotedbl", "numbersign", "dollar", "percent", "ampersand", "apostrophe",
	"parenleft", "parenright", "asterisk", "plus", "comma", "minus", "period", "slash",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"colon", "semicolon", "less", "equal", "greater", "question", "at",
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"bracketleft", "backslash", "bracketright", "asciicircum", "underscore", "grave",
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
	"braceleft", "bar", "braceright", "asciitilde",
}

// latin1Names lists keysym names for 0xa0..0xff.
var latin1Names = [...]string{
	"nobreakspace", "exclamdown", "cent", "sterling", "currency", "yen", "brokenbar", "section",
	"diaeresis", "copyright", "ordfeminine", "guillemotleft", "notsign", "hyphen", "registered", "macron",
	"degree", "plusminus", "twosuperior", "threesuperior", "acute", "mu", "paragraph", "periodcentered",
	"cedilla", "onesuperior", "masculine", "guillemotright", "onequarter", "onehalf", "threequarters", "questiondown",
	"Agrave", "Aacute", "Acircumflex", "Atilde", "Adiaeresis", "Aring", "AE", "Ccedilla",
	"Egrave", "Eacute", "Ecircumflex", "Ediaeresis", "Igrave", "Iacute", "Icircumflex", "Idiaeresis",
	"ETH", "Ntilde", "Ograve", "Oacute", "Ocircumflex", "Otilde", "Odiaeresis", "multiply",
	"Oslash", "Ugrave", "Uacute", "Ucircumflex", "Udiaeresis", "Yacute", "THORN", "ssharp",
	"agrave", "aacute", "acircumflex", "atilde", "adiaeresis", "aring", "ae", "ccedilla",
	"egrave", "eacute", "ecircumflex", "ediaeresis", "igrave", "iacute", "icircumflex", "idiaeresis",
	"eth", "ntilde", "ograve", "oacute", "ocircumflex", "otilde", "odiaeresis", "division",
	"oslash", "ugrave", "uacute", "ucircumflex", "udiaeresis", "yacute", "thorn", "ydiaeresis",
}

type namedKeysym struct {
	name string
	sym  Keysym
	r    rune
}

// namedKeysyms covers the legacy (non-Unicode) keysyms that show up in
// European layouts. The first entry for a keysym is its canonical name.
var namedKeysyms = []namedKeysym{
	// Latin-2
	{"Aogonek", 0x1a1, 'Ą'}, {"breve", 0x1a2, '˘'}, {"Lstroke", 0x1a3, 'Ł'}, {"Lcaron", 0x1a5, 'Ľ'},
	{"Sacute", 0x1a6, 'Ś'}, {"Scaron", 0x1a9, 'Š'}, {"Scedilla", 0x1aa, 'Ş'}, {"Tcaron", 0x1ab, 'Ť'},
	{"Zacute", 0x1ac, 'Ź'}, {"Zcaron", 0x1ae, 'Ž'}, {"Zabovedot", 0x1af, 'Ż'},
	{"aogonek", 0x1b1, 'ą'}, {"ogonek", 0x1b2, '˛'}, {"lstroke", 0x1b3, 'ł'}, {"lcaron", 0x1b5, 'ľ'},
	{"sacute", 0x1b6, 'ś'}, {"caron", 0x1b7, 'ˇ'}, {"scaron", 0x1b9, 'š'}, {"scedilla", 0x1ba, 'ş'},
	{"tcaron", 0x1bb, 'ť'}, {"zacute", 0x1bc, 'ź'}, {"doubleacute", 0x1bd, '˝'}, {"zcaron", 0x1be, 'ž'},
	{"zabovedot", 0x1bf, 'ż'},
	{"Racute", 0x1c0, 'Ŕ'}, {"Abreve", 0x1c3, 'Ă'}, {"Lacute", 0x1c5, 'Ĺ'}, {"Cacute", 0x1c6, 'Ć'},
	{"Ccaron", 0x1c8, 'Č'}, {"Eogonek", 0x1ca, 'Ę'}, {"Ecaron", 0x1cc, 'Ě'}, {"Dcaron", 0x1cf, 'Ď'},
	{"Dstroke", 0x1d0, 'Đ'}, {"Nacute", 0x1d1, 'Ń'}, {"Ncaron", 0x1d2, 'Ň'}, {"Odoubleacute", 0x1d5, 'Ő'},
	{"Rcaron", 0x1d8, 'Ř'}, {"Uring", 0x1d9, 'Ů'}, {"Udoubleacute", 0x1db, 'Ű'}, {"Tcedilla", 0x1de, 'Ţ'},
	{"racute", 0x1e0, 'ŕ'}, {"abreve", 0x1e3, 'ă'}, {"lacute", 0x1e5, 'ĺ'}, {"cacute", 0x1e6, 'ć'},
	{"ccaron", 0x1e8, 'č'}, {"eogonek", 0x1ea, 'ę'}, {"ecaron", 0x1ec, 'ě'}, {"dcaron", 0x1ef, 'ď'},
	{"dstroke", 0x1f0, 'đ'}, {"nacute", 0x1f1, 'ń'}, {"ncaron", 0x1f2, 'ň'}, {"odoubleacute", 0x1f5, 'ő'},
	{"rcaron", 0x1f8, 'ř'}, {"uring", 0x1f9, 'ů'}, {"udoubleacute", 0x1fb, 'ű'}, {"tcedilla", 0x1fe, 'ţ'},
	{"abovedot", 0x1ff, '˙'},

	// Latin-3
	{"Hstroke", 0x2a1, 'Ħ'}, {"Iabovedot", 0x2a9, 'İ'}, {"Gbreve", 0x2ab, 'Ğ'},
	{"hstroke", 0x2b1, 'ħ'}, {"idotless", 0x2b9, 'ı'}, {"gbreve", 0x2bb, 'ğ'},
	{"Cabovedot", 0x2c5, 'Ċ'}, {"Gabovedot", 0x2d5, 'Ġ'}, {"Ubreve", 0x2dd, 'Ŭ'},
	{"cabovedot", 0x2e5, 'ċ'}, {"gabovedot", 0x2f5, 'ġ'}, {"ubreve", 0x2fd, 'ŭ'},

	// Latin-4
	{"Emacron", 0x3aa, 'Ē'}, {"Tslash", 0x3ac, 'Ŧ'}, {"emacron", 0x3ba, 'ē'}, {"tslash", 0x3bc, 'ŧ'},
	{"ENG", 0x3bd, 'Ŋ'}, {"eng", 0x3bf, 'ŋ'}, {"Amacron", 0x3c0, 'Ā'}, {"Iogonek", 0x3c7, 'Į'},
	{"Eabovedot", 0x3cc, 'Ė'}, {"Imacron", 0x3cf, 'Ī'}, {"Omacron", 0x3d2, 'Ō'}, {"Uogonek", 0x3d9, 'Ų'},
	{"Umacron", 0x3de, 'Ū'}, {"amacron", 0x3e0, 'ā'}, {"iogonek", 0x3e7, 'į'}, {"eabovedot", 0x3ec, 'ė'},
	{"imacron", 0x3ef, 'ī'}, {"omacron", 0x3f2, 'ō'}, {"uogonek", 0x3f9, 'ų'}, {"umacron", 0x3fe, 'ū'},

	// Latin-9
	{"OE", 0x13bc, 'Œ'}, {"oe", 0x13bd, 'œ'}, {"Ydiaeresis", 0x13be, 'Ÿ'},

	// Punctuation, currency and technical symbols
	{"EuroSign", 0x20ac, '€'},
	{"emdash", 0xaa9, '—'}, {"endash", 0xaaa, '–'}, {"ellipsis", 0xaae, '…'},
	{"trademark", 0xac9, '™'}, {"leftsinglequotemark", 0xad0, '‘'}, {"rightsinglequotemark", 0xad1, '’'},
	{"leftdoublequotemark", 0xad2, '“'}, {"rightdoublequotemark", 0xad3, '”'}, {"dagger", 0xaf1, '†'},
	{"singlelowquotemark", 0xafd, '‚'}, {"doublelowquotemark", 0xafe, '„'},
	{"lessthanequal", 0x8bc, '≤'}, {"notequal", 0x8bd, '≠'}, {"greaterthanequal", 0x8be, '≥'},
	{"infinity", 0x8c2, '∞'}, {"leftarrow", 0x8fb, '←'}, {"uparrow", 0x8fc, '↑'},
	{"rightarrow", 0x8fd, '→'}, {"downarrow", 0x8fe, '↓'},

	// Unicode-range names that layouts use by name
	{"schwa", 0x1000259, 'ə'}, {"SCHWA", 0x100018f, 'Ə'},
	{"rightanglebracket", 0x100203a, '›'}, {"leftanglebracket", 0x1002039, '‹'},

	// Keypad symbols that produce text
	{"KP_Space", 0xff80, ' '}, {"KP_Tab", 0xff89, '\t'}, {"KP_Enter", 0xff8d, '\r'},
	{"KP_Multiply", 0xffaa, '*'}, {"KP_Add", 0xffab, '+'}, {"KP_Separator", 0xffac, ','},
	{"KP_Subtract", 0xffad, '-'}, {"KP_Decimal", 0xffae, '.'}, {"KP_Divide", 0xffaf, '/'},
	{"KP_0", 0xffb0, '0'}, {"KP_1", 0xffb1, '1'}, {"KP_2", 0xffb2, '2'}, {"KP_3", 0xffb3, '3'},
	{"KP_4", 0xffb4, '4'}, {"KP_5", 0xffb5, '5'}, {"KP_6", 0xffb6, '6'}, {"KP_7", 0xffb7, '7'},
	{"KP_8", 0xffb8, '8'}, {"KP_9", 0xffb9, '9'}, {"KP_Equal", 0xffbd, '='},

	// Editing keys that map to control characters
	{"BackSpace", 0xff08, '\b'}, {"Tab", 0xff09, '\t'}, {"Linefeed", 0xff0a, '\n'},
	{"Clear", 0xff0b, '\v'}, {"Return", 0xff0d, '\r'}, {"Escape", 0xff1b, 0x1b},
	{"Delete", 0xffff, 0x7f},

	// Keys without text
	{"NoSymbol", NoSymbol, 0}, {"VoidSymbol", VoidSymbol, 0},
	{"ISO_Level3_Shift", 0xfe03, 0}, {"ISO_Level3_Latch", 0xfe04, 0}, {"ISO_Level3_Lock", 0xfe05, 0},
	{"ISO_Level5_Shift", 0xfe11, 0}, {"ISO_Left_Tab", 0xfe20, 0}, {"ISO_Next_Group", 0xfe08, 0},
	{"Multi_key", 0xff20, 0}, {"Mode_switch", 0xff7e, 0}, {"Num_Lock", 0xff7f, 0},
	{"Pause", 0xff13, 0}, {"Scroll_Lock", 0xff14, 0}, {"Sys_Req", 0xff15, 0},
	{"Home", 0xff50, 0}, {"Left", 0xff51, 0}, {"Up", 0xff52, 0}, {"Right", 0xff53, 0},
	{"Down", 0xff54, 0}, {"Prior", 0xff55, 0}, {"Next", 0xff56, 0}, {"End", 0xff57, 0},
	{"Print", 0xff61, 0}, {"Insert", 0xff63, 0}, {"Menu", 0xff67, 0}, {"Help", 0xff6a, 0},
	{"F1", 0xffbe, 0}, {"F2", 0xffbf, 0}, {"F3", 0xffc0, 0}, {"F4", 0xffc1, 0},
	{"F5", 0xffc2, 0}, {"F6", 0xffc3, 0}, {"F7", 0xffc4, 0}, {"F8", 0xffc5, 0},
	{"F9", 0xffc6, 0}, {"F10", 0xffc7, 0}, {"F11", 0xffc8, 0}, {"F12", 0xffc9, 0},
	{"Shift_L", 0xffe1, 0}, {"Shift_R", 0xffe2, 0}, {"Control_L", 0xffe3, 0}, {"Control_R", 0xffe4, 0},
	{"Caps_Lock", 0xffe5, 0}, {"Shift_Lock", 0xffe6, 0}, {"Meta_L", 0xffe7, 0}, {"Meta_R", 0xffe8, 0},
	{"Alt_L", 0xffe9, 0}, {"Alt_R", 0xffea, 0}, {"Super_L", 0xffeb, 0}, {"Super_R", 0xffec, 0},
	{"Hyper_L", 0xffed, 0}, {"Hyper_R", 0xffee, 0},

	// Dead keys
	{"dead_grave", 0xfe50, 0}, {"dead_acute", 0xfe51, 0}, {"dead_circumflex", 0xfe52, 0},
	{"dead_tilde", 0xfe53, 0}, {"dead_perispomeni", 0xfe53, 0}, {"dead_macron", 0xfe54, 0},
	{"dead_breve", 0xfe55, 0}, {"dead_abovedot", 0xfe56, 0}, {"dead_diaeresis", 0xfe57, 0},
	{"dead_abovering", 0xfe58, 0}, {"dead_doubleacute", 0xfe59, 0}, {"dead_caron", 0xfe5a, 0},
	{"dead_cedilla", 0xfe5b, 0}, {"dead_ogonek", 0xfe5c, 0}, {"dead_iota", 0xfe5d, 0},
	{"dead_voiced_sound", 0xfe5e, 0}, {"dead_semivoiced_sound", 0xfe5f, 0}, {"dead_belowdot", 0xfe60, 0},
	{"dead_hook", 0xfe61, 0}, {"dead_horn", 0xfe62, 0}, {"dead_stroke", 0xfe63, 0},
	{"dead_abovecomma", 0xfe64, 0}, {"dead_psili", 0xfe64, 0}, {"dead_abovereversedcomma", 0xfe65, 0},
	{"dead_dasia", 0xfe65, 0}, {"dead_doublegrave", 0xfe66, 0}, {"dead_belowring", 0xfe67, 0},
	{"dead_belowmacron", 0xfe68, 0}, {"dead_belowcircumflex", 0xfe69, 0}, {"dead_belowtilde", 0xfe6a, 0},
	{"dead_belowbreve", 0xfe6b, 0}, {"dead_belowdiaeresis", 0xfe6c, 0}, {"dead_invertedbreve", 0xfe6d, 0},
	{"dead_belowcomma", 0xfe6e, 0}, {"dead_currency", 0xfe6f, 0}, {"dead_greek", 0xfe8c, 0},
}

// Legacy aliases accepted when parsing but never produced by Keysym.Name.
var keysymAliases = map[string]Keysym{
	"guillemetleft":   0xab,
	"guillemetright":  0xbb,
	"ordmasculine":    0xba,
	"Ooblique":        0xd8,
	"ooblique":        0xf8,
	"Eth":             0xd0,
	"Thorn":           0xde,
	"ISO_Group_Shift": 0xff7e,
}

var (
	keysymNames = map[Keysym]string{}
	nameKeysyms = map[string]Keysym{}
	keysymRunes = map[Keysym]rune{}
	runeKeysyms = map[rune]Keysym{}
)

func init() {
	for i, name := range asciiNames {
		register(name, Keysym(0x20+i), 0)
	}
	for i, name := range latin1Names {
		register(name, Keysym(0xa0+i), 0)
	}
	for _, n := range namedKeysyms {
		register(n.name, n.sym, n.r)
	}
	for name, sym := range keysymAliases {
		nameKeysyms[name] = sym
	}
}

func register(name string, sym Keysym, r rune) {
	if _, ok := keysymNames[sym]; !ok {
		keysymNames[sym] = name
	}
	nameKeysyms[name] = sym
	if r == 0 {
		return
	}
	keysymRunes[sym] = r
	// Keypad and editing keys must not shadow the plain keysym for a rune.
	if _, ok := runeKeysyms[r]; !ok && r >= 0xa0 {
		runeKeysyms[r] = sym
	}
}
