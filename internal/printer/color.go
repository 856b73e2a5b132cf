package printer

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// colorFuncs holds the per-field colorizers a Printer applies. When
// color is disabled every function is the identity.
type colorFuncs struct {
	path   func(string) string
	lineNo func(string) string
	sep    func(string) string
	match  func(string) string
}

func newColorFuncs(enabled bool) colorFuncs {
	if !enabled {
		id := func(s string) string { return s }
		return colorFuncs{path: id, lineNo: id, sep: id, match: id}
	}
	return colorFuncs{
		path:   color.New(color.FgMagenta, color.Bold).SprintFunc(),
		lineNo: color.New(color.FgGreen).SprintFunc(),
		sep:    color.New(color.FgCyan).SprintFunc(),
		match:  color.New(color.FgRed, color.Bold).SprintFunc(),
	}
}

// AutoColor reports whether w looks like a color-capable terminal,
// wrapping it through go-colorable on Windows so ANSI escapes render
// instead of printing literally. Callers that want ripgrep's default
// "color when a TTY, plain when piped" behavior call this once to decide
// Options.Color, then pass the (possibly wrapped) writer to New.
func AutoColor(w io.Writer) (io.Writer, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return w, false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return w, false
	}
	return colorable.NewColorable(f), true
}
