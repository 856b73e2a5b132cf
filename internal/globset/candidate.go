// Package globset batches many compiled internal/glob patterns into one
// dispatcher, so that testing a path against the whole set costs roughly
// one map lookup per pattern shape instead of one regex evaluation per
// pattern. Grounded on the Candidate/GlobSet split in
// original_source/globset/src/lib.rs, adapted from Rust's borrowed-Path
// Candidate into a small owned-string struct since Go gives up nothing by
// precomputing basename/extension once per path up front.
package globset

import "strings"

// Candidate precomputes the path, basename, and extension a Set needs to
// test against every strategy's fast-path map, so a path walked once is
// decomposed once regardless of how many glob patterns it's tested
// against.
type Candidate struct {
	Path     string
	Basename string
	Ext      string // includes the leading '.'; "" if the basename has none
}

// NewCandidate builds a Candidate from a '/'-separated path. path need not
// be absolute or cleaned; NewCandidate only looks at the last path
// component.
func NewCandidate(path string) *Candidate {
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}
	ext := ""
	// The extension runs from the final dot inclusive, even when that dot
	// is the first byte: a basename of ".rs" has extension ".rs", not "".
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		ext = base[i:]
	}
	return &Candidate{Path: path, Basename: base, Ext: ext}
}
