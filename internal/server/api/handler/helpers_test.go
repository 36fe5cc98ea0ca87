package handler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kbdviz/kbdviz/compose"
	"github.com/kbdviz/kbdviz/layout"
)

// testHolder publishes a two key layout: an "e" key with é on AltGr and an
// apostrophe key with dead_grave on AltGr.
func testHolder(t *testing.T) *compose.Holder {
	t.Helper()
	src, err := layout.NewStatic("test", []layout.StaticKey{
		{Code: 26, Name: "AD03", Symbols: []string{"e", "E", "eacute", "Eacute"}},
		{Code: 48, Name: "AC11", Symbols: []string{"apostrophe", "quotedbl", "dead_grave"}},
	})
	require.NoError(t, err)
	h := compose.NewHolder()
	_, err = h.Rebuild(src)
	require.NoError(t, err)
	return h
}
