package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/scott-cotton/cli"
)

// MainConfig holds the options shared by every mcdocval subcommand: where
// to find MCDOC schema sources, the registry data and the active game
// version, plus output formatting.
type MainConfig struct {
	SchemaDir  string `cli:"name=schema desc='directory of .mcdoc schema files' default=."`
	Registries string `cli:"name=registries desc='registries JSON file (name -> entries/tags)'"`
	Version    string `cli:"name=version desc='active game version'"`
	JSON       bool   `cli:"name=json desc='emit machine-readable JSON instead of text'"`
	Color      bool   `cli:"name=color desc='force colored output'"`
	NoColor    bool   `cli:"name=no-color desc='disable colored output'"`
	Filter     string `cli:"name=filter desc='expr-lang expression filtering reported items'"`

	Main *cli.Command
}

// useColor decides whether to colorize output, honoring explicit flags
// before falling back to a terminal check, the way the teacher's own
// EncodeColors wiring does for its -color flag.
func (cfg *MainConfig) useColor(out io.Writer) bool {
	switch {
	case cfg.NoColor:
		return false
	case cfg.Color:
		return true
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
