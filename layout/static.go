package layout

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// StaticKey describes one physical key of a static layout. Symbols holds one
// entry per level; each entry is a keysym name ("eacute", "dead_acute",
// "U20AC") or a literal character ("é"). An empty entry leaves the level
// without a symbol.
type StaticKey struct {
	Code    Keycode  `json:"code" yaml:"code" toml:"code"`
	Name    string   `json:"name" yaml:"name" toml:"name"`
	Symbols []string `json:"symbols" yaml:"symbols" toml:"symbols"`
}

// Description is the serialized form of a static layout.
type Description struct {
	Name string      `json:"name" yaml:"name" toml:"name"`
	Keys []StaticKey `json:"keys" yaml:"keys" toml:"keys"`
}

// ErrEmptyLayout is returned for layout descriptions without any key.
var ErrEmptyLayout = errors.New("layout has no keys")

type staticKey struct {
	name   string
	levels [][]Keysym
}

// Static is an in-memory Source built from a fixed key table.
type Static struct {
	name     string
	keys     map[Keycode]staticKey
	min, max Keycode
}

// NewStatic builds a Static layout. Keycodes must be unique and named, and
// every symbol must resolve to a keysym. Key names end up in key sequences,
// so they may not contain whitespace or "-".
func NewStatic(name string, keys []StaticKey) (*Static, error) {
	if len(keys) == 0 {
		return nil, ErrEmptyLayout
	}
	s := &Static{name: name, keys: make(map[Keycode]staticKey, len(keys))}
	for i, k := range keys {
		if k.Name == "" {
			return nil, fmt.Errorf("key %d (code %d): missing name", i, k.Code)
		}
		if !validKeyName(k.Name) {
			return nil, fmt.Errorf("key %q (code %d): name may not contain whitespace or '-'", k.Name, k.Code)
		}
		if _, dup := s.keys[k.Code]; dup {
			return nil, fmt.Errorf("key %s: duplicate keycode %d", k.Name, k.Code)
		}
		sk := staticKey{name: k.Name, levels: make([][]Keysym, len(k.Symbols))}
		for level, sym := range k.Symbols {
			ks, err := ParseSymbol(sym)
			if err != nil {
				return nil, fmt.Errorf("key %s level %d: %w", k.Name, level, err)
			}
			if ks != NoSymbol {
				sk.levels[level] = []Keysym{ks}
			}
		}
		s.keys[k.Code] = sk
		if i == 0 || k.Code < s.min {
			s.min = k.Code
		}
		if i == 0 || k.Code > s.max {
			s.max = k.Code
		}
	}
	return s, nil
}

func validKeyName(name string) bool {
	return !strings.ContainsFunc(name, func(r rune) bool { return r == '-' || unicode.IsSpace(r) })
}

// NewStaticFromDescription builds a Static layout from its serialized form.
func NewStaticFromDescription(d Description) (*Static, error) {
	return NewStatic(d.Name, d.Keys)
}

func (s *Static) Name() string { return s.name }

func (s *Static) KeyRange() (Keycode, Keycode) { return s.min, s.max }

func (s *Static) KeyName(code Keycode) (string, bool) {
	k, ok := s.keys[code]
	return k.name, ok
}

func (s *Static) LevelCount(code Keycode) int { return len(s.keys[code].levels) }

func (s *Static) SymbolsAt(code Keycode, level int) []Keysym {
	k, ok := s.keys[code]
	if !ok || level < 0 || level >= len(k.levels) {
		return nil
	}
	return k.levels[level]
}

// Describe converts any Source into its static description, using keysym
// names for every level. Keys are listed in ascending keycode order.
func Describe(src Source) Description {
	d := Description{Name: NameOf(src)}
	min, max := src.KeyRange()
	for code := min; code <= max && code >= min; code++ {
		name, ok := src.KeyName(code)
		if !ok {
			continue
		}
		k := StaticKey{Code: code, Name: name}
		for level := 0; level < src.LevelCount(code); level++ {
			syms := src.SymbolsAt(code, level)
			if len(syms) == 0 {
				k.Symbols = append(k.Symbols, "")
				continue
			}
			k.Symbols = append(k.Symbols, syms[0].Name())
		}
		d.Keys = append(d.Keys, k)
	}
	return d
}
