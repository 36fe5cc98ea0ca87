package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbdviz/kbdviz/compose"
	"github.com/kbdviz/kbdviz/layout"
)

func smallIndex(t *testing.T) *compose.Index {
	t.Helper()
	src, err := layout.Decode([]byte(smallLayoutJSON), layout.FormatJSON)
	require.NoError(t, err)
	idx, _, err := compose.Build(src)
	require.NoError(t, err)
	return idx
}

func TestLookupPrint(t *testing.T) {
	tests := []struct {
		name     string
		lookup   Lookup
		pretty   bool
		expected string
	}{
		{
			name:     "plain text",
			lookup:   Lookup{Letter: "a", Format: "text"},
			expected: "á\tAltGr-a\ná\tAltGr-'  a\nä\tAltGr-Shift-'  a\n",
		},
		{
			name:     "terminal text",
			lookup:   Lookup{Letter: "a", Format: "text"},
			pretty:   true,
			expected: "  á   AltGr + a\n  á   AltGr + ' → a\n  ä   AltGr + Shift + ' → a\n",
		},
		{
			name:     "no variants",
			lookup:   Lookup{Letter: "q", Format: "text"},
			expected: "",
		},
		{
			name:     "json",
			lookup:   Lookup{Letter: "y", Format: "json"},
			expected: `{"letter":"y","variants":[{"character":"ý","key_sequence":"AltGr-'  y"},{"character":"ÿ","key_sequence":"AltGr-Shift-'  y"}]}` + "\n",
		},
		{
			name:     "json without variants",
			lookup:   Lookup{Letter: "q", Format: "json"},
			expected: `{"letter":"q","variants":[]}` + "\n",
		},
	}

	idx := smallIndex(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, tt.lookup.print(idx, &out, tt.pretty))
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestLookupPrintJSONPretty(t *testing.T) {
	var out bytes.Buffer
	l := Lookup{Letter: "A", Format: "json"}
	require.NoError(t, l.print(smallIndex(t), &out, true))

	var got lookupResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "A", got.Letter)
	assert.Len(t, got.Variants, 3)
	assert.Contains(t, out.String(), "\n  ")
}

func TestInteractive(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		missing  []string
	}{
		{
			name:     "letters until escape",
			input:    "aq\x1bz",
			expected: []string{"small: type a letter, Esc to quit\r\n", "a:\r\n  á   AltGr + a\r\n", "q: no variants\r\n"},
			missing:  []string{"z"},
		},
		{
			name:     "ctrl-c exits",
			input:    "\x03a",
			expected: []string{"small: type a letter, Esc to quit\r\n"},
			missing:  []string{"a:"},
		},
		{
			name:     "multibyte input",
			input:    "É",
			expected: []string{"É: no variants\r\n"},
		},
		{
			name:     "control characters ignored",
			input:    "\r\ty",
			expected: []string{"y:\r\n  ý   AltGr + ' → y\r\n"},
		},
		{
			name:     "end of input",
			input:    "",
			expected: []string{"small: type a letter, Esc to quit\r\n"},
		},
	}

	idx := smallIndex(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, interactive(idx, strings.NewReader(tt.input), &out))
			for _, s := range tt.expected {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.missing {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestInteractiveReadError(t *testing.T) {
	err := interactive(smallIndex(t), failingReader{}, io.Discard)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
