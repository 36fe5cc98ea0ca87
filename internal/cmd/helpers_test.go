package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const smallLayoutJSON = `{
  "name": "small",
  "keys": [
    { "code": 38, "name": "AC01", "symbols": ["a", "A", "aacute", "Aacute"] },
    { "code": 48, "name": "AC11", "symbols": ["apostrophe", "quotedbl", "dead_acute", "dead_diaeresis"] }
  ]
}
`

func writeLayout(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "small.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }
