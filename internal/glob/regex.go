package glob

import (
	"regexp"
	"strings"
)

// Options configures regex emission and compilation.
type Options struct {
	// CaseInsensitive folds ASCII case during matching.
	CaseInsensitive bool
	// RequireLiteralSeparator makes '?' and '*' refuse to cross a path
	// separator; without it they expand to "any byte".
	RequireLiteralSeparator bool
	// Separator is the path separator byte. Defaults to '/'.
	Separator byte
	// Anchored suppresses Parse's implicit any-depth prefix for a
	// slash-less pattern, so "foo" matches only the literal string "foo"
	// rather than "foo at any depth". Set by internal/ignore when a
	// pattern that once had a leading '/' had it stripped off for
	// compiling, so the slash's anchoring intent isn't lost along with it.
	Anchored bool
}

func (o Options) sep() byte {
	if o.Separator == 0 {
		return '/'
	}
	return o.Separator
}

// toRegex renders tokens into an anchored, byte-level regex string per
// spec.md §4.A: the three recursive forms expand so that recursive-prefix
// matches "nothing or any-bytes-ending-in-sep", recursive-suffix matches
// "nothing or sep-then-anything", and recursive-middle matches "sep or
// sep-anything-sep".
func toRegex(tokens []token, opts Options) string {
	var b strings.Builder
	b.WriteString(`(?s)`) // '.' must still be excludable per-engine; dot-matches-all is overridden per-token below
	if opts.CaseInsensitive {
		b.WriteString(`(?i)`)
	}
	b.WriteByte('^')
	sep := regexp.QuoteMeta(string(opts.sep()))
	writeTokens(&b, tokens, opts, sep)
	b.WriteByte('$')
	return b.String()
}

func writeTokens(b *strings.Builder, tokens []token, opts Options, sep string) {
	for _, t := range tokens {
		switch t.kind {
		case tokLiteral:
			b.WriteString(regexp.QuoteMeta(string(t.literal)))
		case tokAny:
			if opts.RequireLiteralSeparator {
				b.WriteString("[^" + sep + "]")
			} else {
				b.WriteString(`.`)
			}
		case tokZeroOrMore:
			if opts.RequireLiteralSeparator {
				b.WriteString("[^" + sep + "]*")
			} else {
				b.WriteString(`.*`)
			}
		case tokRecursivePrefix:
			b.WriteString("(?:" + sep + "?|.*" + sep + ")")
		case tokRecursiveSuffix:
			b.WriteString("(?:" + sep + "?|" + sep + ".*)")
		case tokRecursiveMiddle:
			b.WriteString("(?:" + sep + "|" + sep + ".*" + sep + ")")
		case tokClass:
			b.WriteByte('[')
			if t.negated {
				b.WriteByte('^')
			}
			for _, r := range t.ranges {
				if r.Lo == r.Hi {
					b.WriteString(regexp.QuoteMeta(string(r.Lo)))
				} else {
					b.WriteString(regexp.QuoteMeta(string(r.Lo)))
					b.WriteByte('-')
					b.WriteString(regexp.QuoteMeta(string(r.Hi)))
				}
			}
			b.WriteByte(']')
		case tokAlternate:
			b.WriteString("(?:")
			for i, branch := range t.branches {
				if i > 0 {
					b.WriteByte('|')
				}
				writeTokens(b, branch, opts, sep)
			}
			b.WriteByte(')')
		}
	}
}
