package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/kbdviz/kbdviz/compose"
)

// Lookup prints the characters typeable from a letter.
type Lookup struct {
	LayoutOptions `embed:""`

	Letter      string `arg:"" optional:"" help:"Letter to look up (first character is used)"`
	Format      string `help:"Output format" enum:"text,json" default:"text" env:"KBDVIZ_LOOKUP_FORMAT"`
	Interactive bool   `short:"i" help:"Read keystrokes from the terminal and show the variants of each"`
}

type lookupResult struct {
	Letter   string          `json:"letter"`
	Variants []compose.Entry `json:"variants"`
}

// Run is called by Kong when the lookup command is executed.
func (l *Lookup) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if l.Letter == "" && !l.Interactive {
		return errors.New("a letter is required unless --interactive is set")
	}

	src, err := l.Load(ctx, logger)
	if err != nil {
		return err
	}
	idx, stats, err := compose.Build(src)
	if err != nil {
		return err
	}
	logger.Debug("index built", "layout", idx.Layout(), "letters", stats.Letters, "entries", stats.Entries)

	pretty := term.IsTerminal(int(os.Stdout.Fd()))
	if l.Interactive {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return errors.New("--interactive needs a terminal on stdin")
		}
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("enter raw mode: %w", err)
		}
		defer func() { _ = term.Restore(fd, state) }()
		return interactive(idx, os.Stdin, os.Stdout)
	}
	return l.print(idx, os.Stdout, pretty)
}

func (l *Lookup) print(idx *compose.Index, w io.Writer, pretty bool) error {
	entries := idx.FindVariants(l.Letter)
	if l.Format == "json" {
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(lookupResult{Letter: l.Letter, Variants: entries})
	}
	return writeEntries(w, entries, pretty, "\n")
}

// writeEntries prints one entry per line. Terminal output is aligned and
// uses the readable key notation; otherwise fields are tab separated.
func writeEntries(w io.Writer, entries []compose.Entry, pretty bool, eol string) error {
	for _, e := range entries {
		var err error
		if pretty {
			_, err = fmt.Fprintf(w, "  %s   %s%s", e.Character, e.Pretty(), eol)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s%s", e.Character, e.KeySequence, eol)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

const (
	keyCtrlC  = 0x03
	keyCtrlD  = 0x04
	keyEscape = 0x1b
)

// interactive shows the variants of every typed character until Esc, Ctrl-C
// or Ctrl-D. The terminal is in raw mode, so lines end in CRLF.
func interactive(idx *compose.Index, in io.Reader, out io.Writer) error {
	const eol = "\r\n"
	fmt.Fprintf(out, "%s: type a letter, Esc to quit%s", layoutLabel(idx), eol)

	buf := make([]byte, 0, utf8.UTFMax)
	one := make([]byte, 1)
	for {
		n, err := in.Read(one)
		if n == 0 {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			continue
		}
		b := one[0]
		if len(buf) == 0 && (b == keyCtrlC || b == keyCtrlD || b == keyEscape) {
			return nil
		}
		buf = append(buf, b)
		if !utf8.FullRune(buf) {
			continue
		}
		r, _ := utf8.DecodeRune(buf)
		buf = buf[:0]
		if r == utf8.RuneError || r < ' ' {
			continue
		}

		entries := idx.FindVariants(string(r))
		if len(entries) == 0 {
			fmt.Fprintf(out, "%c: no variants%s", r, eol)
			continue
		}
		fmt.Fprintf(out, "%c:%s", r, eol)
		if err := writeEntries(out, entries, true, eol); err != nil {
			return err
		}
	}
}

func layoutLabel(idx *compose.Index) string {
	if idx.Layout() == "" {
		return "layout"
	}
	return idx.Layout()
}
