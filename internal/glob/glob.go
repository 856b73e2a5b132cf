// Package glob compiles a single shell-style glob pattern into a matcher:
// a compiled regular expression plus a cheap classification of the
// pattern's shape, so that internal/globset can dispatch most candidates
// without ever running the regex engine. Grounded on the glob grammar
// in original_source/src/glob.rs and original_source/globset/src/lib.rs,
// reworked as a hand-written recursive-descent parser over runes rather
// than the byte-oriented state machine the Rust source uses.
package glob

import (
	"regexp"
	"strings"
)

// Glob is a single compiled pattern.
type Glob struct {
	pattern  string
	opts     Options
	tokens   []token
	strategy Strategy
	literal  string
	re       *regexp.Regexp
}

// Parse compiles pattern under opts. Returns a *ParseError wrapping one of
// the sentinel errors in errors.go, or *InvalidRangeError, on malformed
// input.
func Parse(pattern string, opts Options) (*Glob, error) {
	p := newParser(pattern)
	if err := p.parse(); err != nil {
		return nil, &ParseError{Pattern: pattern, Err: err}
	}

	strat, lit := classify(p.tokens)

	// A pattern with no literal '/' anywhere (e.g. "foo", "*.rs") is, per
	// gitignore/ripgrep convention, anchored to no particular depth: it
	// matches that basename wherever it occurs. Splice in an implicit
	// recursive prefix for regex emission only, so Match can be a plain
	// whole-string test without globset needing to special-case basenames.
	emitTokens := p.tokens
	if !opts.Anchored && !strings.ContainsRune(pattern, '/') {
		emitTokens = append([]token{{kind: tokRecursivePrefix}}, p.tokens...)
	}

	restr := toRegex(emitTokens, opts)
	re, err := regexp.Compile(restr)
	if err != nil {
		// toRegex is expected to always produce a valid expression; a
		// failure here means a bug in emission, not bad user input, so it
		// is still reported as a ParseError rather than panicking.
		return nil, &ParseError{Pattern: pattern, Err: err}
	}

	return &Glob{
		pattern:  pattern,
		opts:     opts,
		tokens:   p.tokens,
		strategy: strat,
		literal:  lit,
		re:       re,
	}, nil
}

// String returns the original pattern text.
func (g *Glob) String() string { return g.pattern }

// Regexp returns the compiled regular expression backing this glob. Always
// non-nil and always usable directly, regardless of Strategy.
func (g *Glob) Regexp() *regexp.Regexp { return g.re }

// Strategy reports the dispatch shape classify assigned to this glob.
func (g *Glob) Strategy() Strategy { return g.strategy }

// Literal returns the short-listing payload for g.Strategy(): the whole
// path for Literal, the basename for BasenameLiteral, the extension
// (including the leading '.') for Extension and RequiredExtension, the
// literal body for Prefix/Suffix, and "" for Regex.
func (g *Glob) Literal() string { return g.literal }

// Match reports whether path satisfies the glob. It always defers to the
// compiled regex: Match is the correctness oracle, Strategy/Literal are
// purely a performance hint for globset's batched matching.
func (g *Glob) Match(path string) bool {
	return g.re.MatchString(path)
}

// MatchBytes is the []byte counterpart of Match, avoiding an allocation
// when the caller already holds a byte slice (e.g. a walked path built
// from filepath.Join).
func (g *Glob) MatchBytes(path []byte) bool {
	return g.re.Match(path)
}
