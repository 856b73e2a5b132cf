package search

import (
	"regexp/syntax"
)

// literalSet is one node of the literal-extraction algebra described in
// spec.md §4.D: a finite list of candidate literal byte strings, plus a
// completeness flag. complete means lits enumerates every possibility
// exactly (the set can be trusted as an exact description of this
// position in the match); once a concatenation or repetition can't be
// bounded any further, the set is frozen — lits stays as a best-effort
// approximation but complete becomes false, marking it a candidate
// *finder* only (false positives allowed, false negatives are not).
//
// Grounded on original_source/grep/src/literals.rs's Literals type, with
// the same freeze/cross_product/union operations spec.md §4.D names,
// built on Go's regexp/syntax AST instead of regex-syntax's Hir. This is
// the one component of the line searcher built on the standard library
// rather than a third-party dependency — regexp/syntax's AST is the only
// available "parsed regex" representation that lines up with the dual
// regexp/regexp2 engines below it, and no example in the retrieval pack
// ships an alternative regex-AST library.
type literalSet struct {
	lits     [][]byte
	complete bool
}

const (
	maxLiterals   = 64
	maxLiteralLen = 64
)

// emptySet is the concatenation identity: the single literal "", known
// exactly. Concatenating it with any set b yields b unchanged.
func emptySet() literalSet { return literalSet{lits: [][]byte{{}}, complete: true} }

// unknownSet carries no literals at all: "could be anything here",
// contaminating any concatenation it takes part in.
func unknownSet() literalSet { return literalSet{complete: false} }

func singleton(b []byte) literalSet {
	return literalSet{lits: [][]byte{b}, complete: true}
}

func (s literalSet) frozen() literalSet {
	return literalSet{lits: s.lits, complete: false}
}

// crossProduct concatenates every literal in a with every literal in b
// (Cartesian-style), per spec.md §4.D. It freezes (keeps the
// concatenation so far, but marks the result incomplete) when either
// input carries no literals at all, when either input is already
// incomplete (an incomplete set's literals need not be exact prefixes,
// e.g. a union's LCS, so nothing can be appended to or after them), or
// when the product would exceed the size budget. The identity emptySet
// concatenated with an incomplete b yields b.
func crossProduct(a, b literalSet) literalSet {
	if !a.complete || len(a.lits) == 0 || len(b.lits) == 0 {
		return a.frozen()
	}
	if !b.complete {
		if len(a.lits) == 1 && len(a.lits[0]) == 0 {
			return b
		}
		return a.frozen()
	}
	if len(a.lits)*len(b.lits) > maxLiterals {
		return a.frozen()
	}

	out := make([][]byte, 0, len(a.lits)*len(b.lits))
	for _, x := range a.lits {
		for _, y := range b.lits {
			combined := append(append([]byte{}, x...), y...)
			if len(combined) > maxLiteralLen {
				return a.frozen()
			}
			out = append(out, combined)
		}
	}
	return literalSet{lits: out, complete: a.complete && b.complete}
}

// unionSet combines the literal sets of alternation branches. Per
// spec.md §4.D this is approximated by the LCP and LCS of the combined
// list rather than kept as an exact union, so an alternation with many
// branches still contributes at most two candidate strings.
func unionSet(sets ...literalSet) literalSet {
	var all [][]byte
	complete := true
	for _, s := range sets {
		if len(s.lits) == 0 {
			// A branch that could match anything leaves no literal that
			// every match of the alternation contains.
			return unknownSet()
		}
		all = append(all, s.lits...)
		complete = complete && s.complete
	}
	if len(all) == 0 {
		return unknownSet()
	}
	if len(all) == 1 {
		return literalSet{lits: all, complete: complete}
	}

	lcp := longestCommonPrefix(all)
	lcs := longestCommonSuffix(all)
	var out [][]byte
	if len(lcp) > 0 {
		out = append(out, lcp)
	}
	if len(lcs) > 0 && string(lcs) != string(lcp) {
		out = append(out, lcs)
	}
	if len(out) == 0 {
		return unknownSet()
	}
	return literalSet{lits: out, complete: false}
}

func longestCommonPrefix(bs [][]byte) []byte {
	if len(bs) == 0 {
		return nil
	}
	p := bs[0]
	for _, b := range bs[1:] {
		n := 0
		for n < len(p) && n < len(b) && p[n] == b[n] {
			n++
		}
		p = p[:n]
		if len(p) == 0 {
			return nil
		}
	}
	return append([]byte{}, p...)
}

func longestCommonSuffix(bs [][]byte) []byte {
	if len(bs) == 0 {
		return nil
	}
	s := bs[0]
	for _, b := range bs[1:] {
		n := 0
		for n < len(s) && n < len(b) && s[len(s)-1-n] == b[len(b)-1-n] {
			n++
		}
		s = s[len(s)-n:]
		if len(s) == 0 {
			return nil
		}
	}
	return append([]byte{}, s...)
}

// extractPrefixes walks re left to right, returning the literal set
// describing how matches of re can begin.
func extractPrefixes(re *syntax.Regexp) literalSet {
	return extract(re, true)
}

// extractSuffixes walks re right to left, returning the literal set
// describing how matches of re can end. Internally this computes the
// prefix set of re's mirror image (sub-expression order and each
// literal's rune order both reversed, so concatenation composes the same
// way crossProduct already does for prefixes) and then un-mirrors each
// resulting literal back to normal reading order.
func extractSuffixes(re *syntax.Regexp) literalSet {
	s := extract(re, false)
	out := make([][]byte, len(s.lits))
	for i, l := range s.lits {
		out[i] = []byte(string(reverseRunes([]rune(string(l)))))
	}
	return literalSet{lits: out, complete: s.complete}
}

func extract(re *syntax.Regexp, forward bool) literalSet {
	switch re.Op {
	case syntax.OpLiteral:
		runes := re.Rune
		if !forward {
			runes = reverseRunes(runes)
		}
		return singleton([]byte(string(runes)))

	case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpBeginText,
		syntax.OpEndLine, syntax.OpEndText, syntax.OpWordBoundary,
		syntax.OpNoWordBoundary:
		return emptySet()

	case syntax.OpCapture:
		return extract(re.Sub[0], forward)

	case syntax.OpConcat:
		subs := re.Sub
		if !forward {
			subs = reverseSubs(subs)
		}
		acc := emptySet()
		for _, sub := range subs {
			if !acc.complete {
				// Already frozen: further concatenation can't recover
				// completeness, and extending an unbounded prefix
				// indefinitely isn't useful as a pre-filter literal.
				break
			}
			acc = crossProduct(acc, extract(sub, forward))
		}
		return acc

	case syntax.OpAlternate:
		sets := make([]literalSet, len(re.Sub))
		for i, sub := range re.Sub {
			sets[i] = extract(sub, forward)
		}
		return unionSet(sets...)

	case syntax.OpStar, syntax.OpQuest:
		// Zero occurrences is always possible, so no literal is certain
		// here: crossProduct freezes any concatenation this unknownSet
		// joins.
		return unknownSet()

	case syntax.OpPlus:
		return extract(re.Sub[0], forward).frozen()

	case syntax.OpRepeat:
		if re.Min < 1 {
			return unknownSet()
		}
		acc := emptySet()
		n := re.Min
		if n > 4 {
			n = 4 // size limit: treat longer minimums as frozen after 4 copies
		}
		sub := extract(re.Sub[0], forward)
		for i := 0; i < n; i++ {
			acc = crossProduct(acc, sub)
		}
		if re.Min > n || re.Max != re.Min {
			acc = acc.frozen()
		}
		return acc

	default:
		return unknownSet()
	}
}

func reverseRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[len(rs)-1-i] = r
	}
	return out
}

func reverseSubs(subs []*syntax.Regexp) []*syntax.Regexp {
	out := make([]*syntax.Regexp, len(subs))
	for i, s := range subs {
		out[len(subs)-1-i] = s
	}
	return out
}

// requiredLiteral finds the longest literal substring that must appear
// somewhere in every match of re (a concatenation element with no
// alternation/repetition around it). Used as a pre-filter candidate
// alongside the prefix/suffix sets.
func requiredLiteral(re *syntax.Regexp) []byte {
	switch re.Op {
	case syntax.OpLiteral:
		return []byte(string(re.Rune))
	case syntax.OpCapture:
		return requiredLiteral(re.Sub[0])
	case syntax.OpConcat:
		var best []byte
		for _, sub := range re.Sub {
			if lit := requiredLiteral(sub); len(lit) > len(best) {
				best = lit
			}
		}
		return best
	default:
		return nil
	}
}
