package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kbdviz/kbdviz/layout"
)

const fallbackLayout = "us"

// LayoutOptions selects the layout a command indexes. Without any of them the
// system keymap is compiled, falling back to the builtin "us" layout when
// xkbcli is missing.
type LayoutOptions struct {
	Layout  string       `help:"Layout file (.xkb, .json, .yaml, .toml)" env:"KBDVIZ_LAYOUT" xor:"layout-source"`
	Builtin string       `help:"Builtin layout (us, us-altgr-intl, de, fr)" env:"KBDVIZ_BUILTIN" xor:"layout-source"`
	System  bool         `help:"Compile the keymap selected by --xkb.* with xkbcli" xor:"layout-source"`
	XKB     layout.RMLVO `embed:"" prefix:"xkb."`
}

// Source describes where the layout comes from, e.g. "file:de.xkb".
func (o LayoutOptions) Source() string {
	switch {
	case o.Layout != "":
		return "file:" + o.Layout
	case o.Builtin != "":
		return "builtin:" + o.Builtin
	default:
		return "system:" + o.XKB.String()
	}
}

// Load reads the selected layout.
func (o LayoutOptions) Load(ctx context.Context, logger *slog.Logger) (layout.Source, error) {
	switch {
	case o.Layout != "":
		return layout.LoadFile(o.Layout)
	case o.Builtin != "":
		return layout.Builtin(o.Builtin)
	}

	km, err := layout.FromSystem(ctx, o.XKB)
	if err == nil {
		return km, nil
	}
	if o.System || !errors.Is(err, layout.ErrNoCompiler) {
		return nil, fmt.Errorf("load system keymap (%s): %w", o.XKB, err)
	}
	logger.Warn("system keymap unavailable, using builtin layout", "layout", fallbackLayout, "error", err)
	return layout.Builtin(fallbackLayout)
}
