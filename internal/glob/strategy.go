package glob

import "strings"

// Strategy is the shape-based classification assigned to a compiled glob,
// used by the glob set (internal/globset) to pick the cheapest dispatcher.
type Strategy int

const (
	// StrategyLiteral: the whole path must equal this string exactly.
	StrategyLiteral Strategy = iota
	// StrategyBasenameLiteral: the path's basename must equal this string,
	// at any depth.
	StrategyBasenameLiteral
	// StrategyExtension: the path's extension (see Candidate) must equal
	// this string, at any depth.
	StrategyExtension
	// StrategyRequiredExtension: the extension shortlists candidates, but a
	// confirming regex is still required.
	StrategyRequiredExtension
	// StrategyPrefix: the path must equal this literal body or begin with
	// it followed by a separator.
	StrategyPrefix
	// StrategySuffix: the path must equal this literal body or end with a
	// separator followed by it.
	StrategySuffix
	// StrategyRegex: fallback — match the compiled regex directly.
	StrategyRegex
)

func (s Strategy) String() string {
	switch s {
	case StrategyLiteral:
		return "Literal"
	case StrategyBasenameLiteral:
		return "BasenameLiteral"
	case StrategyExtension:
		return "Extension"
	case StrategyRequiredExtension:
		return "RequiredExtension"
	case StrategyPrefix:
		return "Prefix"
	case StrategySuffix:
		return "Suffix"
	default:
		return "Regex"
	}
}

// classify inspects a token sequence and assigns exactly one Strategy tag,
// per spec.md §4.A. literal carries the strategy's short-listing payload:
// the whole path for Literal, the basename for BasenameLiteral, the
// extension for Extension and RequiredExtension, the literal body for
// Prefix/Suffix, and is empty for Regex.
func classify(tokens []token) (strat Strategy, literal string) {
	stripped, hadPrefix := stripLeadingRecursivePrefix(tokens)

	if isLiteralRun(stripped) {
		lit := literalString(stripped)
		switch {
		case !strings.ContainsRune(lit, '/'):
			return StrategyBasenameLiteral, lit
		case !hadPrefix:
			return StrategyLiteral, lit
		default:
			return StrategySuffix, lit
		}
	}

	// Extension: exactly "*" followed by a literal extension, e.g. "*.rs"
	// or "**/*.rs" (both reduce to the same any-depth extension match). The
	// literal must hold a single '.', since a Candidate's extension starts
	// at the basename's last '.'; "*.tar.gz" falls through to the cases below.
	if len(stripped) >= 2 && stripped[0].kind == tokZeroOrMore && isLiteralRun(stripped[1:]) {
		ext := literalString(stripped[1:])
		if strings.HasPrefix(ext, ".") && !strings.ContainsRune(ext, '/') && !strings.ContainsRune(ext[1:], '.') {
			return StrategyExtension, ext
		}
	}

	// Prefix: a literal body (optionally containing separators) followed by
	// a trailing "/**", with nothing recursive anywhere else, e.g. "src/**".
	if n := len(tokens); n >= 2 && tokens[n-1].kind == tokRecursiveSuffix && isLiteralRun(tokens[:n-1]) {
		return StrategyPrefix, literalString(tokens[:n-1])
	}

	// RequiredExtension: no recursive tokens anywhere, the sequence ends in
	// a literal extension, and something other than a single leading "*"
	// precedes it (otherwise it would already have matched Extension above).
	if !hasRecursive(tokens) {
		if n := len(tokens); n >= 1 && tokens[n-1].kind == tokLiteral {
			// Walk back over the trailing literal run to find where it
			// starts, and check it begins with '.' with no embedded '/'.
			i := n - 1
			for i > 0 && tokens[i-1].kind == tokLiteral {
				i--
			}
			ext := literalString(tokens[i:])
			if strings.HasPrefix(ext, ".") && !strings.ContainsRune(ext, '/') && i > 0 {
				// Only the part from the last '.' can equal a Candidate's
				// extension; the confirming regex checks the rest.
				return StrategyRequiredExtension, ext[strings.LastIndexByte(ext, '.'):]
			}
		}
	}

	return StrategyRegex, ""
}

// stripLeadingRecursivePrefix removes a leading "**/" token, since it and an
// absent-separator bare pattern both mean "match at any depth" — the two
// collapse to the same fast-dispatch shape.
func stripLeadingRecursivePrefix(tokens []token) ([]token, bool) {
	if len(tokens) > 0 && tokens[0].kind == tokRecursivePrefix {
		return tokens[1:], true
	}
	return tokens, false
}

func hasRecursive(tokens []token) bool {
	for _, t := range tokens {
		switch t.kind {
		case tokRecursivePrefix, tokRecursiveSuffix, tokRecursiveMiddle:
			return true
		}
	}
	return false
}
