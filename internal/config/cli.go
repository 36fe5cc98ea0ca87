// Package config defines the kbdviz command line, which doubles as the
// schema of its configuration files.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/kbdviz/kbdviz/internal/cmd"
	"github.com/kbdviz/kbdviz/internal/log"
)

// CLI is the root command.
type CLI struct {
	Log     log.Config       `embed:"" prefix:"log."`
	Config  string           `help:"Configuration file to load before the default locations" type:"path" env:"KBDVIZ_CONFIG"`
	Version kong.VersionFlag `help:"Print the version and exit"`

	Lookup  cmd.Lookup        `cmd:"" help:"Show the characters a letter leads to and how to type them"`
	Dump    cmd.Dump          `cmd:"" help:"Dump the whole compose index"`
	Serve   cmd.Serve         `cmd:"" help:"Serve lookups over TCP"`
	Service cmd.Service       `cmd:"" help:"Manage the background service"`
	Cfg     cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration file helpers"`
}
