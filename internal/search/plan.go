package search

import (
	"bytes"
	"regexp/syntax"
)

// Options configures a Plan and the searches run with it. Mirrors the
// flag surface spec.md §4.D describes for the line searcher;
// internal/cliopts translates command-line flags into this struct.
type Options struct {
	CaseInsensitive bool
	Fancy           bool // use the regexp2 backtracking engine; no command-line flag sets it
	LineTerminator  byte // defaults to '\n'
	Invert          bool
	ContextBefore   int
	ContextAfter    int
	BinaryDetection bool

	// StopAfterFirstMatch halts SearchBytes/SearchReader as soon as one
	// match is found, for files-with-matches mode where nothing past the
	// first match changes the outcome.
	StopAfterFirstMatch bool

	// MaxMatches caps the number of matching lines a search reports, per
	// spec.md §4.D ("Terminated when match_count ≥ max_count"); 0 means
	// unlimited. The search halts as soon as the cap is reached, so no
	// trailing context or separator events for lines past the cap are
	// ever emitted.
	MaxMatches int
}

func (o Options) terminator() byte {
	if o.LineTerminator == 0 {
		return '\n'
	}
	return o.LineTerminator
}

// prefilter is a cheap, possibly-false-positive test for "this region of
// the buffer might contain a match", used to skip past lines that can't
// possibly match before paying for a full regex confirmation. A nil
// *prefilter means no usable literal was extracted and every line must
// be confirmed directly.
type prefilter struct {
	lit    []byte
	fold   bool
}

// find returns the offset of the next possible match at or after start,
// or -1 if the literal does not occur again.
func (p *prefilter) find(data []byte, start int) int {
	if p == nil {
		return start
	}
	hay := data[start:]
	var idx int
	if p.fold {
		idx = bytes.Index(bytes.ToLower(hay), bytes.ToLower(p.lit))
	} else {
		idx = bytes.Index(hay, p.lit)
	}
	if idx < 0 {
		return -1
	}
	return start + idx
}

const minPrefilterLen = 3

// buildPrefilter runs the literal-extraction algebra over re's AST and
// picks the single longest candidate among the prefix/suffix LCP/LCS and
// the longest required inner literal, per spec.md §4.D. Literals shorter
// than minPrefilterLen aren't selective enough to be worth the detour, so
// no prefilter is built (every line falls through to full confirmation).
func buildPrefilter(re *syntax.Regexp, fold bool) *prefilter {
	re = re.Simplify()

	prefixes := extractPrefixes(re)
	suffixes := extractSuffixes(re)
	required := requiredLiteral(re)

	best := required
	consider := func(set literalSet) {
		lcp := longestCommonPrefix(set.lits)
		if len(lcp) > len(best) {
			best = lcp
		}
		lcs := longestCommonSuffix(set.lits)
		if len(lcs) > len(best) {
			best = lcs
		}
	}
	consider(prefixes)
	consider(suffixes)

	if len(best) < minPrefilterLen {
		return nil
	}
	return &prefilter{lit: best, fold: fold}
}

// containsLiteralRune reports whether re can only match a string
// containing r as a literal character (as opposed to via a character
// class, dot, or similar).
func containsLiteralRune(re *syntax.Regexp, r rune) bool {
	switch re.Op {
	case syntax.OpLiteral:
		for _, rr := range re.Rune {
			if rr == r {
				return true
			}
		}
	default:
		for _, sub := range re.Sub {
			if containsLiteralRune(sub, r) {
				return true
			}
		}
	}
	return false
}

// Plan is a compiled, ready-to-run pattern: the selected regex engine
// plus an optional literal prefilter. Building a Plan is the expensive
// part (regex compilation, literal extraction); a Plan can be reused
// across many SearchBytes/SearchReader/SearchFile calls.
type Plan struct {
	engine    Engine
	prefilter *prefilter
	term      byte
	invert    bool
}

// NewPlan compiles pattern under opts into a Plan. Returns
// *ErrLiteralTerminator if pattern can only match by containing the
// configured line terminator literally. With Fancy set, a pattern that
// regexp/syntax cannot parse (a backreference, a lookaround) goes to
// regexp2 without that terminator check.
func NewPlan(pattern string, opts Options) (*Plan, error) {
	term := opts.terminator()

	flags := syntax.Perl
	if opts.CaseInsensitive {
		flags |= syntax.FoldCase
	}
	ast, err := syntax.Parse(pattern, flags)
	if err != nil {
		if !opts.Fancy {
			return nil, err
		}
		ast = nil // regexp2's compile below decides whether the pattern is valid
	}
	if ast != nil && containsLiteralRune(ast, rune(term)) {
		return nil, &ErrLiteralTerminator{Terminator: term}
	}

	engine, err := newEngine(pattern, opts)
	if err != nil {
		return nil, err
	}

	var pf *prefilter
	if !opts.Fancy {
		pf = buildPrefilter(ast, opts.CaseInsensitive)
	}

	return &Plan{engine: engine, prefilter: pf, term: term, invert: opts.Invert}, nil
}

func (p *Plan) String() string { return p.engine.String() }
