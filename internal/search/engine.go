package search

import (
	"regexp"

	"github.com/dlclark/regexp2"
)

// Engine is the minimal surface both regex backends expose: find the
// leftmost-first match of a pattern inside a byte slice, returning its
// [start, end) byte offsets, or nil if there is no match.
//
// Two implementations exist per spec.md §4.D's dual-engine requirement:
// re2Engine wraps the standard library's linear-time RE2 engine (the
// default), and fancyEngine wraps dlclark/regexp2 for patterns that need
// backreferences or lookaround (selected explicitly via Options.Fancy,
// mirroring ripgrep's -P/--pcre2 opt-in rather than silent fallback,
// since backtracking engines can be made to run in exponential time and
// that tradeoff belongs to the caller, not to an automatic heuristic).
type Engine interface {
	FindIndex(b []byte) []int
	String() string
}

type re2Engine struct {
	re *regexp.Regexp
}

func (e *re2Engine) FindIndex(b []byte) []int { return e.re.FindIndex(b) }
func (e *re2Engine) String() string           { return e.re.String() }

type fancyEngine struct {
	re *regexp2.Regexp
}

func (e *fancyEngine) FindIndex(b []byte) []int {
	m, err := e.re.FindRunesMatch([]rune(string(b)))
	if err != nil || m == nil {
		return nil
	}
	// regexp2 indexes by rune; translate back to byte offsets by
	// re-encoding the prefix. Patterns exercised through this engine are
	// assumed to be the exceptional case (Fancy mode), so the extra
	// encode pass here isn't on the hot path of ordinary searches.
	runes := []rune(string(b))
	start := len(string(runes[:m.Index]))
	end := start + len(m.String())
	return []int{start, end}
}

func (e *fancyEngine) String() string { return e.re.String() }

func newEngine(pattern string, opts Options) (Engine, error) {
	if opts.Fancy {
		reopts := regexp2.RE2
		if opts.CaseInsensitive {
			reopts |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(pattern, reopts)
		if err != nil {
			return nil, err
		}
		return &fancyEngine{re: re}, nil
	}

	restr := pattern
	if opts.CaseInsensitive {
		restr = "(?i)" + restr
	}
	re, err := regexp.Compile(restr)
	if err != nil {
		return nil, err
	}
	return &re2Engine{re: re}, nil
}
