package compose

// Combination is one letter a dead key combines with and the character the
// pair produces.
type Combination struct {
	Letter   rune
	Composed rune
}

// deadKeyTable lists, per dead keysym name, the Latin letters each accent is
// conventionally combined with. Order is significant: it is the order
// entries appear in the index.
var deadKeyTable = map[string][]Combination{
	"dead_acute": {
		{'a', 'á'}, {'e', 'é'}, {'i', 'í'}, {'o', 'ó'}, {'u', 'ú'},
		{'y', 'ý'}, {'c', 'ć'}, {'n', 'ń'}, {'s', 'ś'}, {'z', 'ź'},
		{'l', 'ĺ'}, {'r', 'ŕ'},
	},
	"dead_grave": {
		{'a', 'à'}, {'e', 'è'}, {'i', 'ì'}, {'o', 'ò'}, {'u', 'ù'},
	},
	"dead_circumflex": {
		{'a', 'â'}, {'e', 'ê'}, {'i', 'î'}, {'o', 'ô'}, {'u', 'û'},
		{'c', 'ĉ'}, {'g', 'ĝ'}, {'h', 'ĥ'}, {'j', 'ĵ'}, {'s', 'ŝ'}, {'w', 'ŵ'}, {'y', 'ŷ'},
	},
	"dead_diaeresis": {
		{'a', 'ä'}, {'e', 'ë'}, {'i', 'ï'}, {'o', 'ö'}, {'u', 'ü'}, {'y', 'ÿ'},
	},
	"dead_tilde": {
		{'a', 'ã'}, {'n', 'ñ'}, {'o', 'õ'}, {'e', 'ẽ'}, {'i', 'ĩ'}, {'u', 'ũ'},
	},
	"dead_cedilla": {
		{'c', 'ç'}, {'s', 'ş'}, {'g', 'ģ'}, {'k', 'ķ'}, {'l', 'ļ'}, {'n', 'ņ'}, {'r', 'ŗ'}, {'t', 'ţ'},
	},
	"dead_ogonek": {
		{'a', 'ą'}, {'e', 'ę'}, {'i', 'į'}, {'u', 'ų'},
	},
	"dead_caron": {
		{'c', 'č'}, {'s', 'š'}, {'z', 'ž'}, {'r', 'ř'}, {'e', 'ě'},
		{'d', 'ď'}, {'n', 'ň'}, {'t', 'ť'},
	},
	"dead_breve": {
		{'a', 'ă'}, {'g', 'ğ'}, {'u', 'ŭ'},
	},
	"dead_macron": {
		{'a', 'ā'}, {'e', 'ē'}, {'i', 'ī'}, {'o', 'ō'}, {'u', 'ū'},
	},
	"dead_abovedot": {
		{'e', 'ė'}, {'z', 'ż'}, {'c', 'ċ'}, {'g', 'ġ'},
	},
	"dead_abovering": {
		{'a', 'å'}, {'u', 'ů'},
	},
	"dead_stroke": {
		{'l', 'ł'}, {'o', 'ø'}, {'d', 'đ'}, {'h', 'ħ'}, {'t', 'ŧ'},
	},
	"dead_doubleacute": {
		{'o', 'ő'}, {'u', 'ű'},
	},
	"dead_belowdot": {
		{'a', 'ạ'}, {'e', 'ẹ'}, {'i', 'ị'}, {'o', 'ọ'}, {'u', 'ụ'},
	},
}

// DeadKeyCombinations returns the combinations of the dead keysym name (for
// example "dead_acute"). Unknown dead keys have none.
func DeadKeyCombinations(name string) []Combination {
	return deadKeyTable[name]
}
