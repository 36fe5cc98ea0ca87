package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntrySteps(t *testing.T) {
	tests := []struct {
		seq      string
		chord    Chord
		next     string
		twoStep  bool
		pretty   string
		wantFail bool
	}{
		{seq: "AltGr-e", chord: Chord{"AltGr", "e"}, pretty: "AltGr + e"},
		{seq: "Shift-5", chord: Chord{"Shift", "5"}, pretty: "Shift + 5"},
		{seq: "AltGr-Shift-e", chord: Chord{"AltGr-Shift", "e"}, pretty: "AltGr + Shift + e"},
		{seq: "AltGr-'  e", chord: Chord{"AltGr", "'"}, next: "e", twoStep: true, pretty: "AltGr + ' → e"},
		{seq: "AltGr-Shift-6  a", chord: Chord{"AltGr-Shift", "6"}, next: "a", twoStep: true, pretty: "AltGr + Shift + 6 → a"},
		{seq: "AltGr--", chord: Chord{"AltGr", "-"}, pretty: "AltGr + -"},
		{seq: "AltGr--  u", chord: Chord{"AltGr", "-"}, next: "u", twoStep: true, pretty: "AltGr + - → u"},
		{seq: "5", chord: Chord{"", "5"}, pretty: "5"},
		{seq: "-", chord: Chord{"", "-"}, pretty: "-"},
		{seq: "TLDE", chord: Chord{"", "TLDE"}, pretty: "TLDE"},
		{seq: "", wantFail: true},
		{seq: "AltGr-e  ", wantFail: true, twoStep: true},
		{seq: "e  x", wantFail: true, twoStep: true},
		{seq: "-e", wantFail: true},
		{seq: "AltGr-'  e  e", wantFail: true, twoStep: true},
	}
	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			e := Entry{Character: "x", KeySequence: tt.seq}
			assert.Equal(t, tt.twoStep, e.IsTwoStep())
			chord, next, err := e.Steps()
			if tt.wantFail {
				assert.Error(t, err)
				assert.Equal(t, tt.seq, e.Pretty())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.chord, chord)
			assert.Equal(t, tt.next, next)
			assert.Equal(t, tt.pretty, e.Pretty())
		})
	}
}

func TestChordString(t *testing.T) {
	assert.Equal(t, "AltGr-Shift-'", Chord{Modifier: ModAltGrShift, Key: "'"}.String())
	assert.Equal(t, "q", Chord{Key: "q"}.String())
}
