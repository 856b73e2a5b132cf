// Package printer turns internal/search Events into the printed output
// the CLI surface promises: plain text or colorized, per-file match
// counts, or just a list of matching paths.
//
// Grounded on original_source/src/printer.rs and original_source/src/terminal.rs
// for which events exist and how context-separator suppression works,
// and on cmd/aide's plain fmt.Fprintf(os.Stderr, ...) error-reporting
// style for the non-colorized sink.
package printer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/veloxsearch/velox/internal/search"
)

// Mode selects which of the alternate output modes spec.md §6 names a
// Printer renders.
type Mode int

const (
	ModeStandard Mode = iota
	ModeCount
	ModeFilesWithMatches
	ModeFilesWithoutMatches
	ModeFilesOnly // --files: print every path that would be searched
)

// Options configures a Printer's rendering of one file's worth of Events.
type Options struct {
	Mode         Mode
	LineNumber   bool
	WithFilename bool
	Color        bool
	Replace      string // -r REPL, empty disables
}

// Printer renders a single file's search.Events to an underlying writer.
// A Printer is not safe for concurrent use; internal/walk's worker pool
// gives each worker its own Printer writing into a private buffer, and
// only the final flush to the shared stdout needs a mutex (spec.md §5).
type Printer struct {
	w    *bufio.Writer
	opts Options
	c    colorFuncs
}

// New wraps w; each PrintFile call renders one file.
func New(w io.Writer, opts Options) *Printer {
	return &Printer{w: bufio.NewWriter(w), opts: opts, c: newColorFuncs(opts.Color)}
}

// PrintFile renders stats/events for one file according to p's Mode,
// returning whether the file counts as a hit for that Mode (used by the
// caller for the process exit code): true for every file in
// ModeFilesOnly, true for a file without matches in
// ModeFilesWithoutMatches, and otherwise whether it had a matching line.
// In ModeCount with WithFilename a zero count is still printed while
// false is returned.
func (p *Printer) PrintFile(path string, stats search.Stats, events []search.Event) (matched bool, err error) {
	matched = stats.LineCount > 0

	switch p.opts.Mode {
	case ModeFilesOnly:
		_, err = fmt.Fprintln(p.w, path)
		return true, p.flush(err)

	case ModeFilesWithMatches:
		if matched {
			_, err = fmt.Fprintln(p.w, path)
		}
		return matched, p.flush(err)

	case ModeFilesWithoutMatches:
		if !matched {
			_, err = fmt.Fprintln(p.w, path)
		}
		return !matched, p.flush(err)

	case ModeCount:
		if matched || p.opts.WithFilename {
			if p.opts.WithFilename {
				_, err = fmt.Fprintf(p.w, "%s:%d\n", path, stats.LineCount)
			} else {
				_, err = fmt.Fprintf(p.w, "%d\n", stats.LineCount)
			}
		}
		return matched, p.flush(err)

	default:
		return matched, p.printStandard(path, events)
	}
}

// printStandard renders every event it's given; the search itself already
// stops at Options.MaxMatches (see internal/search), so events never
// contains trailing context/separator lines past the cap.
func (p *Printer) printStandard(path string, events []search.Event) error {
	for _, e := range events {
		if err := p.printEvent(path, e); err != nil {
			return p.flush(err)
		}
	}
	return p.flush(nil)
}

func (p *Printer) printEvent(path string, e search.Event) error {
	if e.Kind == search.EventSeparator {
		_, err := fmt.Fprintln(p.w, "--")
		return err
	}

	var prefix string
	if p.opts.WithFilename {
		prefix += p.c.path(path) + p.c.sep(":")
	}
	if p.opts.LineNumber {
		sep := ":"
		if e.Kind == search.EventContext {
			sep = "-"
		}
		prefix += p.c.lineNo(strconv.Itoa(e.LineNumber)) + p.c.sep(sep)
	}

	line := renderLine(e, p.c, p.opts.Replace)
	_, err := fmt.Fprintf(p.w, "%s%s\n", prefix, line)
	return err
}

// renderLine highlights e's match spans (or applies a -r replacement) in
// e.Line, for Match events; Context events pass through untouched.
func renderLine(e search.Event, c colorFuncs, replace string) string {
	if e.Kind != search.EventMatch || len(e.Matches) == 0 {
		return string(e.Line)
	}
	if replace != "" {
		return applyReplace(e.Line, e.Matches, replace)
	}

	var out []byte
	prev := 0
	for _, m := range e.Matches {
		out = append(out, e.Line[prev:m[0]]...)
		out = append(out, c.match(string(e.Line[m[0]:m[1]]))...)
		prev = m[1]
	}
	out = append(out, e.Line[prev:]...)
	return string(out)
}

// applyReplace substitutes replace for every match span. Capture-group
// expansion ($1, $name) needs submatch offsets search.Event doesn't
// currently carry (only whole-match spans); until that's threaded
// through, replace is inserted literally.
func applyReplace(line []byte, matches [][2]int, replace string) string {
	var out []byte
	prev := 0
	for _, m := range matches {
		out = append(out, line[prev:m[0]]...)
		out = append(out, []byte(replace)...)
		prev = m[1]
	}
	out = append(out, line[prev:]...)
	return string(out)
}

func (p *Printer) flush(err error) error {
	if ferr := p.w.Flush(); err == nil {
		err = ferr
	}
	return err
}
