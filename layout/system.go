package layout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// RMLVO selects an XKB keymap by rules, model, layout, variant and options.
// Empty fields fall back to the xkbcommon defaults.
type RMLVO struct {
	Rules   string `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty" help:"XKB rules." env:"KBDVIZ_XKB_RULES"`
	Model   string `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty" help:"XKB model." env:"KBDVIZ_XKB_MODEL"`
	Layout  string `json:"layout,omitempty" yaml:"layout,omitempty" toml:"layout,omitempty" help:"XKB layout, e.g. us or de." env:"KBDVIZ_XKB_LAYOUT"`
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty" toml:"variant,omitempty" help:"XKB layout variant." env:"KBDVIZ_XKB_VARIANT"`
	Options string `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty" help:"XKB options." env:"KBDVIZ_XKB_OPTIONS"`
}

// String renders the selection the way setxkbmap -query prints it.
func (r RMLVO) String() string {
	parts := []string{}
	for _, kv := range [][2]string{
		{"rules", r.Rules}, {"model", r.Model}, {"layout", r.Layout},
		{"variant", r.Variant}, {"options", r.Options},
	} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+"="+kv[1])
		}
	}
	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, " ")
}

func (r RMLVO) args() []string {
	args := []string{"compile-keymap"}
	for _, kv := range [][2]string{
		{"--rules", r.Rules}, {"--model", r.Model}, {"--layout", r.Layout},
		{"--variant", r.Variant}, {"--options", r.Options},
	} {
		if kv[1] != "" {
			args = append(args, kv[0], kv[1])
		}
	}
	return args
}

// CompilerCommand is the executable used by FromSystem.
var CompilerCommand = "xkbcli"

// ErrNoCompiler is returned when the keymap compiler is not installed.
var ErrNoCompiler = errors.New("xkbcli not found in PATH")

// FromSystem compiles the selected keymap with xkbcli and parses the result.
func FromSystem(ctx context.Context, sel RMLVO) (*Keymap, error) {
	bin, err := exec.LookPath(CompilerCommand)
	if err != nil {
		return nil, ErrNoCompiler
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, sel.args()...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("compile keymap (%s): %w", sel, err)
		}
		return nil, fmt.Errorf("compile keymap (%s): %w: %s", sel, err, msg)
	}
	km, err := ParseKeymap(&stdout)
	if err != nil {
		return nil, err
	}
	if km.name == "" {
		km.name = sel.String()
	}
	return km, nil
}
