package compose

import (
	"fmt"
	"strings"
)

// Separators used in key sequences. A chord joins modifiers and the key with
// ChordSeparator; a two-step sequence separates the dead-key chord from the
// following keystroke with StepSeparator.
const (
	ChordSeparator = "-"
	StepSeparator  = "  "
)

// Entry is one character reachable on the layout and the keys that produce
// it.
type Entry struct {
	Character   string `json:"character" yaml:"character" toml:"character"`
	KeySequence string `json:"key_sequence" yaml:"key_sequence" toml:"key_sequence"`
}

// Chord is a set of keys pressed together. Modifier is empty for an
// unmodified key.
type Chord struct {
	Modifier string `json:"modifier,omitempty" yaml:"modifier,omitempty" toml:"modifier,omitempty"`
	Key      string `json:"key" yaml:"key" toml:"key"`
}

func (c Chord) String() string {
	if c.Modifier == "" {
		return c.Key
	}
	return c.Modifier + ChordSeparator + c.Key
}

// IsTwoStep reports whether the entry needs a dead key followed by a second
// keystroke.
func (e Entry) IsTwoStep() bool {
	return strings.Contains(e.KeySequence, StepSeparator)
}

// Steps splits the key sequence into its chord and, for dead-key sequences,
// the key typed afterwards. next is empty for direct entries.
func (e Entry) Steps() (chord Chord, next string, err error) {
	first := e.KeySequence
	if i := strings.Index(first, StepSeparator); i >= 0 {
		first, next = first[:i], first[i+len(StepSeparator):]
		if next == "" || strings.Contains(next, StepSeparator) {
			return Chord{}, "", fmt.Errorf("malformed key sequence %q", e.KeySequence)
		}
	}
	if first == "" {
		return Chord{}, "", fmt.Errorf("empty key sequence")
	}
	chord, ok := parseChord(first)
	if !ok || (next != "" && chord.Modifier == "") {
		return Chord{}, "", fmt.Errorf("malformed key sequence %q", e.KeySequence)
	}
	return chord, next, nil
}

// parseChord splits on the last separator. A trailing "--" means the key
// itself is "-".
func parseChord(s string) (Chord, bool) {
	if s == ChordSeparator {
		return Chord{Key: s}, true
	}
	if strings.HasSuffix(s, ChordSeparator+ChordSeparator) {
		mod := strings.TrimSuffix(s, ChordSeparator+ChordSeparator)
		return Chord{Modifier: mod, Key: ChordSeparator}, mod != ""
	}
	i := strings.LastIndex(s, ChordSeparator)
	if i < 0 {
		return Chord{Key: s}, true
	}
	if i == 0 || i == len(s)-1 {
		return Chord{}, false
	}
	return Chord{Modifier: s[:i], Key: s[i+1:]}, true
}

// Pretty renders the key sequence for people: "AltGr + e", or
// "AltGr + ' → e" for dead keys.
func (e Entry) Pretty() string {
	chord, next, err := e.Steps()
	if err != nil {
		return e.KeySequence
	}
	var sb strings.Builder
	if chord.Modifier != "" {
		sb.WriteString(strings.ReplaceAll(chord.Modifier, ChordSeparator, " + "))
		sb.WriteString(" + ")
	}
	sb.WriteString(chord.Key)
	if next != "" {
		sb.WriteString(" → ")
		sb.WriteString(next)
	}
	return sb.String()
}

func directSequence(modifier, key string) string {
	return Chord{Modifier: modifier, Key: key}.String()
}

func twoStepSequence(chord, letter string) string {
	return chord + StepSeparator + letter
}
