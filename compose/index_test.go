package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbdviz/kbdviz/layout"
)

func staticSource(t testing.TB, keys ...layout.StaticKey) layout.Source {
	t.Helper()
	src, err := layout.NewStatic("test", keys)
	require.NoError(t, err)
	return src
}

func builtin(t testing.TB, name string) layout.Source {
	t.Helper()
	src, err := layout.Builtin(name)
	require.NoError(t, err)
	return src
}

func TestBuildDeadAcute(t *testing.T) {
	src := staticSource(t, layout.StaticKey{Code: 48, Name: "AC11", Symbols: []string{"apostrophe", "quotedbl", "dead_acute"}})

	idx, stats, err := Build(src)
	require.NoError(t, err)

	variants := idx.FindVariants("e")
	require.NotEmpty(t, variants)
	assert.Contains(t, variants, Entry{Character: "é", KeySequence: "AltGr-'  e"})
	for _, v := range variants {
		assert.True(t, strings.HasSuffix(v.KeySequence, "  e"))
	}
	assert.Equal(t, 1, stats.DeadKeys)
	assert.Equal(t, 0, stats.DirectEntries)
	assert.Equal(t, len(DeadKeyCombinations("dead_acute")), stats.DeadKeyEntries)
	assert.Equal(t, 2, stats.Unindexed)
}

func TestBuildLevelThreeSuppression(t *testing.T) {
	tests := []struct {
		name    string
		symbols []string
		want    []Entry
	}{
		{
			name:    "uppercase of altgr symbol",
			symbols: []string{"x", "X", "e", "E"},
			want:    []Entry{{Character: "e", KeySequence: "AltGr-x"}},
		},
		{
			name:    "unrelated symbol",
			symbols: []string{"x", "X", "e", "U1EBD"},
			want: []Entry{
				{Character: "e", KeySequence: "AltGr-x"},
				{Character: "ẽ", KeySequence: "AltGr-Shift-x"},
			},
		},
		{
			name:    "same symbol twice",
			symbols: []string{"x", "X", "eacute", "eacute"},
			want: []Entry{
				{Character: "é", KeySequence: "AltGr-x"},
				{Character: "é", KeySequence: "AltGr-Shift-x"},
			},
		},
		{
			name:    "no altgr symbol",
			symbols: []string{"x", "X", "", "Eacute"},
			want:    []Entry{{Character: "É", KeySequence: "AltGr-Shift-x"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, _, err := Build(staticSource(t, layout.StaticKey{Code: 53, Name: "AB02", Symbols: tt.symbols}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, idx.FindVariants("e"))
		})
	}
}

func TestBuildLevelRules(t *testing.T) {
	src := staticSource(t,
		// Plain letters and their Shift form carry nothing new.
		layout.StaticKey{Code: 38, Name: "AC01", Symbols: []string{"a", "A"}},
		// Level 0 accented letter, level 1 non-uppercase.
		layout.StaticKey{Code: 47, Name: "AC10", Symbols: []string{"odiaeresis", "eacute"}},
		// Whitespace and control characters never show up.
		layout.StaticKey{Code: 65, Name: "SPCE", Symbols: []string{"space", "space", "nobreakspace", "Tab"}},
		// Levels above AltGr+Shift are ignored.
		layout.StaticKey{Code: 39, Name: "AC02", Symbols: []string{"s", "S", "ssharp", "section", "sacute", "Sacute"}},
		// Keys without a printable base symbol are labelled with their name.
		layout.StaticKey{Code: 49, Name: "TLDE", Symbols: []string{"dead_circumflex", "degree", "aacute"}},
	)
	idx, stats, err := Build(src)
	require.NoError(t, err)

	assert.Equal(t, []Entry{{Character: "ö", KeySequence: "AC10"}}, idx.FindVariants("o"))
	assert.Equal(t, []Entry{{Character: "é", KeySequence: "Shift-AC10"}}, idx.FindVariants("e"))
	assert.Equal(t, []Entry{{Character: "ß", KeySequence: "AltGr-s"}}, idx.FindVariants("s"))
	assert.Equal(t, []Entry{{Character: "á", KeySequence: "AltGr-TLDE"}}, idx.FindVariants("a"))
	assert.Equal(t, 0, stats.DeadKeys)
	assert.Equal(t, 5, stats.Keys)
	assert.Equal(t, 4, idx.Count())
}

func TestBuildDeadKeyOnUnlabelledKey(t *testing.T) {
	src := staticSource(t,
		layout.StaticKey{Code: 21, Name: "AE12", Symbols: []string{"dead_acute", "dead_grave", "dead_cedilla"}},
	)
	idx, stats, err := Build(src)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.DeadKeys)
	assert.Equal(t, 0, idx.Count())
}

func TestBuildBuiltinUSIntl(t *testing.T) {
	idx, stats, err := Build(builtin(t, "us-altgr-intl"))
	require.NoError(t, err)
	assert.Equal(t, "us-altgr-intl", idx.Layout())
	assert.Equal(t, stats, idx.Stats())
	assert.Equal(t, stats.Letters, idx.Count())
	assert.Equal(t, stats.Entries, stats.DirectEntries+stats.DeadKeyEntries)

	e := idx.FindVariants("e")
	require.GreaterOrEqual(t, len(e), 4)
	assert.Equal(t, []Entry{
		{Character: "€", KeySequence: "AltGr-5"},
		{Character: "é", KeySequence: "AltGr-e"},
		{Character: "ë", KeySequence: "AltGr-r"},
		{Character: "ē", KeySequence: "AltGr-Shift-3  e"},
	}, e[:4])
	assert.Contains(t, e, Entry{Character: "ê", KeySequence: "AltGr-6  e"})
	assert.Contains(t, e, Entry{Character: "é", KeySequence: "AltGr-'  e"})

	// Both routes to é are kept.
	count := 0
	for _, v := range e {
		if v.Character == "é" {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestBuildProperties(t *testing.T) {
	for _, name := range layout.BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			src := builtin(t, name)
			idx, _, err := Build(src)
			require.NoError(t, err)

			for _, g := range idx.Groups() {
				require.NotEmpty(t, g.Entries)
				letter := []rune(g.Letter)[0]
				for _, e := range g.Entries {
					base, ok := BaseLetter([]rune(e.Character)[0])
					require.True(t, ok)
					assert.Equal(t, letter, base, "entry %+v", e)

					chord, next, err := e.Steps()
					require.NoError(t, err, "entry %+v", e)
					if e.IsTwoStep() {
						assert.Equal(t, 1, strings.Count(e.KeySequence, StepSeparator))
						assert.NotEmpty(t, chord.Modifier)
						assert.NotEmpty(t, next)
					} else {
						assert.NotContains(t, e.KeySequence, StepSeparator)
						assert.Empty(t, next)
					}
				}
			}

			again, _, err := Build(src)
			require.NoError(t, err)
			assert.Equal(t, idx.Groups(), again.Groups())
		})
	}
}

func TestFindVariants(t *testing.T) {
	idx, _, err := Build(builtin(t, "us-altgr-intl"))
	require.NoError(t, err)

	empty := idx.FindVariants("")
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	// Nothing on the layout derives from q.
	assert.Empty(t, idx.FindVariants("q"))
	assert.Empty(t, idx.FindVariants("Q"))
	assert.Empty(t, idx.FindVariants("7"))

	lower := idx.FindVariants("e")
	upper := idx.FindVariants("E")
	require.GreaterOrEqual(t, len(upper), len(lower))
	assert.Equal(t, lower, upper[:len(lower)])

	// Only the first character counts.
	assert.Equal(t, lower, idx.FindVariants("eXYZ"))

	// Results are copies.
	lower[0].Character = "changed"
	assert.NotEqual(t, "changed", idx.FindVariants("e")[0].Character)
}

func TestFindVariantsUppercaseKey(t *testing.T) {
	idx := &Index{entries: map[rune][]Entry{
		'e': {{Character: "é", KeySequence: "AltGr-e"}},
		'E': {{Character: "É", KeySequence: "AltGr-Shift-e"}},
	}}
	assert.Equal(t, []Entry{{Character: "é", KeySequence: "AltGr-e"}}, idx.FindVariants("e"))
	assert.Equal(t, []Entry{
		{Character: "é", KeySequence: "AltGr-e"},
		{Character: "É", KeySequence: "AltGr-Shift-e"},
	}, idx.FindVariants("E"))
}

func TestEmpty(t *testing.T) {
	idx := Empty()
	assert.Equal(t, 0, idx.Count())
	assert.Empty(t, idx.FindVariants("a"))
	assert.Empty(t, idx.Groups())
	assert.Empty(t, idx.Letters())
}

func TestLettersSorted(t *testing.T) {
	idx, _, err := Build(builtin(t, "de"))
	require.NoError(t, err)
	letters := idx.Letters()
	require.NotEmpty(t, letters)
	for i := 1; i < len(letters); i++ {
		assert.Less(t, letters[i-1], letters[i])
	}
}

func BenchmarkBuild(b *testing.B) {
	src := builtin(b, "us-altgr-intl")
	for b.Loop() {
		if _, _, err := Build(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFindVariants(b *testing.B) {
	idx, _, err := Build(builtin(b, "us-altgr-intl"))
	require.NoError(b, err)
	for b.Loop() {
		idx.FindVariants("E")
	}
}
