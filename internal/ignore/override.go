package ignore

import (
	"github.com/veloxsearch/velox/internal/glob"
	"github.com/veloxsearch/velox/internal/globset"
)

// overrideSet backs layer 1 (command-line override globs): any match,
// whether from a negated ("!pattern", whitelist) or plain ("pattern",
// ignore) entry, is a final verdict — nothing below layer 1 gets a say.
type overrideSet struct {
	set        *globset.Set
	negations  []bool // parallel to the glob index order Builder.Add assigned
	sourceTags []string
}

// NewOverrideSet compiles raw command-line override patterns (each
// optionally prefixed with '!' to whitelist instead of ignore) into a
// dispatchable set. opts should typically set CaseInsensitive per
// --glob/--iglob and leave RequireLiteralSeparator matching the rest of
// the engine's convention.
func NewOverrideSet(patterns []string, opts glob.Options) (*overrideSet, []error) {
	b := globset.NewBuilder(opts)
	ov := &overrideSet{}
	var errs []error
	for _, p := range patterns {
		negation := false
		body := p
		if len(body) > 0 && body[0] == '!' {
			negation = true
			body = body[1:]
		}
		if _, err := b.Add(body); err != nil {
			errs = append(errs, err)
			continue
		}
		ov.negations = append(ov.negations, negation)
		ov.sourceTags = append(ov.sourceTags, p)
	}
	set, err := b.Build()
	if err != nil {
		return nil, append(errs, err)
	}
	ov.set = set
	return ov, errs
}

func (ov *overrideSet) check(path string, isDir bool) (Verdict, Reason, bool) {
	if ov == nil || ov.set == nil || ov.set.Len() == 0 {
		return None, Reason{}, false
	}
	matches := ov.set.Matches(globset.NewCandidate(path))
	if len(matches) == 0 {
		return None, Reason{}, false
	}
	// Last-added matching override wins, mirroring ignore-file semantics:
	// a later --glob on the command line overrides an earlier one.
	last := matches[len(matches)-1]
	v := Ignore
	if ov.negations[last] {
		v = Whitelist
	}
	return v, Reason{Layer: LayerOverride, Source: ov.sourceTags[last]}, true
}
