package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/kbdviz/kbdviz/compose"
	"github.com/kbdviz/kbdviz/layout"
)

// Dump writes the whole index, or the layout description it was built from.
type Dump struct {
	LayoutOptions `embed:""`

	Format string `help:"Output format" enum:"json,yaml,toml" default:"json" env:"KBDVIZ_DUMP_FORMAT"`
	Output string `short:"o" help:"Write to this file instead of stdout"`
	Keys   bool   `help:"Dump the layout's keys instead of the index"`
}

type indexDump struct {
	Layout  string          `json:"layout" yaml:"layout" toml:"layout"`
	Stats   compose.Stats   `json:"stats" yaml:"stats" toml:"stats"`
	Letters []compose.Group `json:"letters" yaml:"letters" toml:"letters"`
}

// Run is called by Kong when the dump command is executed.
func (d *Dump) Run(logger *slog.Logger) error {
	src, err := d.Load(context.Background(), logger)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if d.Output != "" {
		f, err := os.Create(d.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := d.write(src, w); err != nil {
		return err
	}
	if d.Output != "" {
		logger.Info("dump written", "path", d.Output, "format", d.Format)
	}
	return nil
}

func (d *Dump) write(src layout.Source, w io.Writer) error {
	if d.Keys {
		data, err := layout.Encode(layout.Describe(src), d.Format)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	idx, stats, err := compose.Build(src)
	if err != nil {
		return err
	}
	data, err := encodeDump(indexDump{Layout: idx.Layout(), Stats: stats, Letters: idx.Groups()}, d.Format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func encodeDump(v indexDump, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(v)
	case "toml":
		return toml.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
