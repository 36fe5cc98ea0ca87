// Package compose builds an index of the characters a keyboard layout can
// produce, grouped by the plain letter they are derived from, together with
// the key sequence that types each of them.
package compose

import (
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/kbdviz/kbdviz/layout"
)

// Stats describes what a build found.
type Stats struct {
	Keys           int `json:"keys" yaml:"keys" toml:"keys"`
	Letters        int `json:"letters" yaml:"letters" toml:"letters"`
	Entries        int `json:"entries" yaml:"entries" toml:"entries"`
	DirectEntries  int `json:"direct_entries" yaml:"direct_entries" toml:"direct_entries"`
	DeadKeys       int `json:"dead_keys" yaml:"dead_keys" toml:"dead_keys"`
	DeadKeyEntries int `json:"dead_key_entries" yaml:"dead_key_entries" toml:"dead_key_entries"`
	Unindexed      int `json:"unindexed" yaml:"unindexed" toml:"unindexed"`
}

// Index maps base letters to the characters derived from them. An Index is
// immutable once built and safe for concurrent use.
type Index struct {
	layout  string
	entries map[rune][]Entry
	stats   Stats
}

// Group is the list of entries filed under one letter.
type Group struct {
	Letter  string  `json:"letter" yaml:"letter" toml:"letter"`
	Entries []Entry `json:"entries" yaml:"entries" toml:"entries"`
}

var empty = &Index{entries: map[rune][]Entry{}}

// Empty returns an index without entries. Every lookup on it returns nothing.
func Empty() *Index { return empty }

// Build walks every named key of src in ascending keycode order. Direct
// entries for levels 0-3 are collected first, dead keys found on the AltGr
// levels are expanded afterwards. Keys without usable symbols are skipped.
func Build(src layout.Source) (idx *Index, stats Stats, err error) {
	name := ""
	if src != nil {
		name = layout.NameOf(src)
	}
	defer func() {
		if r := recover(); r != nil {
			idx, stats = nil, Stats{}
			err = &BuildError{Layout: name, Err: fmt.Errorf("%w: %v", errSourcePanics, r)}
		}
	}()

	keys, err := readKeys(src)
	if err != nil {
		return nil, Stats{}, &BuildError{Layout: name, Err: err}
	}

	b := builder{entries: map[rune][]Entry{}}
	b.stats.Keys = len(keys)
	for _, k := range keys {
		label := k.label()
		for level := range k.levels {
			r, ok := k.reportable(level)
			if !ok {
				continue
			}
			if b.add(r, directSequence(modifierLabel(level), label)) {
				b.stats.DirectEntries++
			}
		}
	}

	var dead []deadKey
	for _, k := range keys {
		dead = append(dead, k.deadKeys()...)
	}
	b.stats.DeadKeys = len(dead)
	for _, d := range dead {
		for _, c := range DeadKeyCombinations(d.name) {
			if b.add(c.Composed, twoStepSequence(d.chord, string(c.Letter))) {
				b.stats.DeadKeyEntries++
			}
		}
	}

	b.stats.Letters = len(b.entries)
	b.stats.Entries = b.stats.DirectEntries + b.stats.DeadKeyEntries
	return &Index{layout: name, entries: b.entries, stats: b.stats}, b.stats, nil
}

func readKeys(src layout.Source) ([]keyView, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	min, max := src.KeyRange()
	if min > max {
		return nil, fmt.Errorf("%w: %d > %d", ErrKeyRange, min, max)
	}
	var keys []keyView
	for code := min; ; code++ {
		if name, ok := src.KeyName(code); ok {
			keys = append(keys, readKey(src, code, name))
		}
		if code == max {
			break
		}
	}
	if len(keys) == 0 {
		return nil, ErrNoNamedKeys
	}
	return keys, nil
}

type builder struct {
	entries map[rune][]Entry
	stats   Stats
}

func (b *builder) add(r rune, seq string) bool {
	base, ok := BaseLetter(r)
	if !ok {
		b.stats.Unindexed++
		return false
	}
	b.entries[base] = append(b.entries[base], Entry{Character: string(r), KeySequence: seq})
	return true
}

// Layout returns the name of the layout the index was built from.
func (i *Index) Layout() string { return i.layout }

// Stats returns the counters collected while building the index.
func (i *Index) Stats() Stats { return i.stats }

// Count returns the number of distinct base letters.
func (i *Index) Count() int { return len(i.entries) }

// FindVariants returns the entries for the first character of input. The
// entries under its lowercase form come first; for uppercase input the
// entries filed under the uppercase form follow. The result is a copy and
// never nil.
func (i *Index) FindVariants(input string) []Entry {
	r, size := utf8.DecodeRuneInString(input)
	if size == 0 {
		return []Entry{}
	}
	lower := i.entries[unicode.ToLower(r)]
	var upper []Entry
	if unicode.IsUpper(r) {
		upper = i.entries[unicode.ToUpper(r)]
	}
	out := make([]Entry, 0, len(lower)+len(upper))
	out = append(out, lower...)
	return append(out, upper...)
}

// Letters returns the indexed base letters in ascending order.
func (i *Index) Letters() []rune {
	letters := make([]rune, 0, len(i.entries))
	for r := range i.entries {
		letters = append(letters, r)
	}
	slices.Sort(letters)
	return letters
}

// Groups returns every letter with its entries, letters ascending.
func (i *Index) Groups() []Group {
	groups := make([]Group, 0, len(i.entries))
	for _, r := range i.Letters() {
		groups = append(groups, Group{Letter: string(r), Entries: slices.Clone(i.entries[r])})
	}
	return groups
}
