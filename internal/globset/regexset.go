package globset

// regexSet matches a byte slice against a compiled group of alternative
// regular expressions in a single pass, returning the indices (into the
// slice of patterns it was built from) of every alternative that
// matched. Two implementations exist: a Hyperscan-backed one (the
// default) and a sequential regexp.Regexp one (see regexset_sequential.go
// and the two build-tag-selected factories).
type regexSet interface {
	Match(data []byte) []int
}
