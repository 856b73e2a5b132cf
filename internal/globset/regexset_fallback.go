//go:build nohyperscan

package globset

// hyperscanAvailable is always false in a nohyperscan build: the flier/gohs
// cgo binding (and the Hyperscan C library it wraps) isn't linked in at
// all, so there's nothing to probe for.
func hyperscanAvailable() bool { return false }

func newRegexSet(patterns []string) (regexSet, error) {
	return newSequentialRegexSet(patterns)
}
