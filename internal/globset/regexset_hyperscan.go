//go:build !nohyperscan

package globset

import (
	"github.com/flier/gohs/hyperscan"
	"github.com/klauspost/cpuid/v2"
)

// hyperscanAvailable reports whether the running CPU has the instruction
// support Hyperscan's generated matcher programs assume. cpuid gives us
// this as a cheap one-time check instead of discovering it the hard way
// via a SIGILL.
func hyperscanAvailable() bool {
	return cpuid.CPU.Supports(cpuid.SSSE3)
}

// hyperscanRegexSet scans every alternative in one Hyperscan block-mode
// pass instead of trying each regexp.Regexp in turn.
type hyperscanRegexSet struct {
	db      hyperscan.BlockDatabase
	scratch *hyperscan.Scratch
}

func newRegexSet(patterns []string) (regexSet, error) {
	if !hyperscanAvailable() {
		return newSequentialRegexSet(patterns)
	}

	pats := make([]*hyperscan.Pattern, len(patterns))
	for i, p := range patterns {
		pat := hyperscan.NewPattern(p, hyperscan.SomLeftMost)
		pat.Id = i
		pats[i] = pat
	}

	db, err := hyperscan.NewBlockDatabase(pats...)
	if err != nil {
		// A pattern Hyperscan's regex subset rejects (e.g. backreferences
		// slipped in from a Fancy-engine-only confirmation regex) still
		// has to work; fall back rather than surface a compile error for
		// a perfectly valid RE2 pattern.
		return newSequentialRegexSet(patterns)
	}
	scratch, err := hyperscan.NewScratch(db)
	if err != nil {
		return newSequentialRegexSet(patterns)
	}
	return &hyperscanRegexSet{db: db, scratch: scratch}, nil
}

func (s *hyperscanRegexSet) Match(data []byte) []int {
	var hits []int
	seen := make(map[int]bool)
	handler := func(id uint, from, to uint64, flags uint, context interface{}) error {
		idx := int(id)
		if !seen[idx] {
			seen[idx] = true
			hits = append(hits, idx)
		}
		return nil
	}
	// Scan errors surface as an empty hit set rather than propagating: a
	// confirming regex that can't run is treated the same as one that
	// didn't match, leaving the candidate excluded rather than crashing
	// the walk.
	_ = s.db.Scan(data, s.scratch, handler, nil)
	return hits
}
