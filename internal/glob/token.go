package glob

// tokenKind tags the shape of a single parsed glob token. Kept as a sum type
// carrying its own payload (literal rune, class ranges, or an alternation's
// parsed branches) rather than a hierarchy of matcher types, so the hot
// regex-emission and classification passes are a single switch each instead
// of a virtual-call fan-out per token.
type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokAny                // '?'
	tokZeroOrMore         // '*'
	tokRecursivePrefix    // '**/' at the start
	tokRecursiveSuffix    // '/**' at the end
	tokRecursiveMiddle    // '/**/' in the middle
	tokClass              // '[...]'
	tokAlternate          // '{a,b,c}', one level deep
)

type classRange struct {
	Lo, Hi rune
}

type token struct {
	kind    tokenKind
	literal rune         // tokLiteral
	negated bool         // tokClass
	ranges  []classRange // tokClass
	// branches holds, for tokAlternate, the token sequence for each
	// comma-separated alternative. A glob containing an alternation is
	// classified Regex, or RequiredExtension when a literal extension
	// follows it (see strategy.go); both confirm with the compiled regex, so
	// branches only need to support regex emission, not literal inspection.
	branches [][]token
}

// isLiteralRun reports whether every token in ts is a plain literal
// character (used by the strategy classifier to detect Literal/BasenameLiteral
// shapes).
func isLiteralRun(ts []token) bool {
	for _, t := range ts {
		if t.kind != tokLiteral {
			return false
		}
	}
	return true
}

// literalString concatenates a run of literal tokens into a string. Callers
// must check isLiteralRun(ts) first.
func literalString(ts []token) string {
	rs := make([]rune, len(ts))
	for i, t := range ts {
		rs[i] = t.literal
	}
	return string(rs)
}
