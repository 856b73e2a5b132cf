package globset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/veloxsearch/velox/internal/glob"
)

// Set matches a Candidate against many compiled globs at once, dispatching
// each one through the cheapest strategy its shape allows (see
// internal/glob.Strategy) rather than evaluating every pattern's regex for
// every path.
type Set struct {
	globs []*glob.Glob
	fold  func(string) string

	literals   map[string][]int
	basenames  map[string][]int
	extensions map[string][]int

	reqExt map[string]*confirmGroup

	prefixAC     *ahocorasick.Matcher
	prefixKeys   []string
	prefixOwners [][]int

	suffixAC     *ahocorasick.Matcher
	suffixKeys   []string
	suffixOwners [][]int

	fallback *confirmGroup
}

// confirmGroup pairs a compiled regexSet with the glob index each of its
// patterns (in order) belongs to.
type confirmGroup struct {
	set    regexSet
	owners []int
}

func (g *confirmGroup) matchInto(data []byte, out []int) []int {
	if g == nil {
		return out
	}
	for _, i := range g.set.Match(data) {
		out = append(out, g.owners[i])
	}
	return out
}

// Builder accumulates patterns before compiling them into a Set.
type Builder struct {
	opts  glob.Options
	globs []*glob.Glob
}

// NewBuilder starts a Builder. Every pattern Add-ed to it is parsed under
// the same Options, matching the real-world convention that one override
// set (one --glob/--iglob family, or one ignore file's patterns) shares a
// single case-sensitivity and separator policy.
func NewBuilder(opts glob.Options) *Builder {
	return &Builder{opts: opts}
}

// Add parses pattern and appends it to the set under construction,
// returning the index it will occupy in Set match results.
func (b *Builder) Add(pattern string) (int, error) {
	g, err := glob.Parse(pattern, b.opts)
	if err != nil {
		return 0, err
	}
	b.globs = append(b.globs, g)
	return len(b.globs) - 1, nil
}

// Len reports how many patterns have been added so far.
func (b *Builder) Len() int { return len(b.globs) }

// Build compiles every added pattern into a Set.
func (b *Builder) Build() (*Set, error) {
	s := &Set{
		globs:      b.globs,
		literals:   map[string][]int{},
		basenames:  map[string][]int{},
		extensions: map[string][]int{},
		reqExt:     map[string]*confirmGroup{},
	}
	if b.opts.CaseInsensitive {
		s.fold = strings.ToLower
	} else {
		s.fold = func(s string) string { return s }
	}

	reqExtPatterns := map[string][]string{}
	reqExtOwners := map[string][]int{}

	prefixPos := map[string]int{}
	suffixPos := map[string]int{}
	var fallbackPatterns []string
	var fallbackOwners []int

	for i, g := range b.globs {
		key := s.fold(g.Literal())
		switch g.Strategy() {
		case glob.StrategyLiteral:
			s.literals[key] = append(s.literals[key], i)
		case glob.StrategyBasenameLiteral:
			s.basenames[key] = append(s.basenames[key], i)
		case glob.StrategyExtension:
			s.extensions[key] = append(s.extensions[key], i)
		case glob.StrategyRequiredExtension:
			reqExtPatterns[key] = append(reqExtPatterns[key], g.Regexp().String())
			reqExtOwners[key] = append(reqExtOwners[key], i)
		case glob.StrategyPrefix:
			pos, ok := prefixPos[key]
			if !ok {
				pos = len(s.prefixKeys)
				prefixPos[key] = pos
				s.prefixKeys = append(s.prefixKeys, key)
				s.prefixOwners = append(s.prefixOwners, nil)
			}
			s.prefixOwners[pos] = append(s.prefixOwners[pos], i)
		case glob.StrategySuffix:
			pos, ok := suffixPos[key]
			if !ok {
				pos = len(s.suffixKeys)
				suffixPos[key] = pos
				s.suffixKeys = append(s.suffixKeys, key)
				s.suffixOwners = append(s.suffixOwners, nil)
			}
			s.suffixOwners[pos] = append(s.suffixOwners[pos], i)
		default:
			fallbackPatterns = append(fallbackPatterns, g.Regexp().String())
			fallbackOwners = append(fallbackOwners, i)
		}
	}

	if len(s.prefixKeys) > 0 {
		s.prefixAC = ahocorasick.NewStringMatcher(s.prefixKeys)
	}
	if len(s.suffixKeys) > 0 {
		s.suffixAC = ahocorasick.NewStringMatcher(s.suffixKeys)
	}

	for ext, pats := range reqExtPatterns {
		rs, err := newRegexSet(pats)
		if err != nil {
			return nil, fmt.Errorf("globset: compiling required-extension group %q: %w", ext, err)
		}
		s.reqExt[ext] = &confirmGroup{set: rs, owners: reqExtOwners[ext]}
	}

	if len(fallbackPatterns) > 0 {
		rs, err := newRegexSet(fallbackPatterns)
		if err != nil {
			return nil, fmt.Errorf("globset: compiling fallback regex set: %w", err)
		}
		s.fallback = &confirmGroup{set: rs, owners: fallbackOwners}
	}

	return s, nil
}

// Len reports the number of patterns compiled into the set.
func (s *Set) Len() int { return len(s.globs) }

// Glob returns the compiled pattern at index i, as returned by Builder.Add.
func (s *Set) Glob(i int) *glob.Glob { return s.globs[i] }

// IsMatch reports whether any pattern in the set matches path.
func (s *Set) IsMatch(path string) bool {
	return len(s.MatchesInto(NewCandidate(path), nil)) > 0
}

// Matches returns every glob index (see Builder.Add) that matches cand, in
// ascending order with duplicates removed.
func (s *Set) Matches(cand *Candidate) []int {
	return s.MatchesInto(cand, nil)
}

// MatchesInto is the allocation-conscious form of Matches: out is reused
// across calls (its backing array is cleared, not its capacity), letting a
// walker that calls this once per visited path avoid a fresh slice per
// call.
func (s *Set) MatchesInto(cand *Candidate, out []int) []int {
	out = out[:0]

	if idxs, ok := s.literals[s.fold(cand.Path)]; ok {
		out = append(out, idxs...)
	}
	if idxs, ok := s.basenames[s.fold(cand.Basename)]; ok {
		out = append(out, idxs...)
	}
	if cand.Ext != "" {
		if idxs, ok := s.extensions[s.fold(cand.Ext)]; ok {
			out = append(out, idxs...)
		}
		if grp, ok := s.reqExt[s.fold(cand.Ext)]; ok {
			out = grp.matchInto([]byte(cand.Path), out)
		}
	}

	if s.prefixAC != nil {
		path := s.fold(cand.Path)
		for _, pos := range s.prefixAC.Match([]byte(path)) {
			// The glob's trailing "/**" matches nothing, or a separator and
			// anything after it, so the body must end the path or be
			// followed by '/'.
			if key := s.prefixKeys[pos]; path == key || strings.HasPrefix(path, key+"/") {
				out = append(out, s.prefixOwners[pos]...)
			}
		}
	}
	if s.suffixAC != nil {
		path := s.fold(cand.Path)
		for _, pos := range s.suffixAC.Match([]byte(path)) {
			// Likewise the leading "**/" requires the body to start the path
			// or follow a '/'.
			if key := s.suffixKeys[pos]; path == key || strings.HasSuffix(path, "/"+key) {
				out = append(out, s.suffixOwners[pos]...)
			}
		}
	}

	out = s.fallback.matchInto([]byte(cand.Path), out)

	sort.Ints(out)
	return dedupeSorted(out)
}

func dedupeSorted(xs []int) []int {
	if len(xs) < 2 {
		return xs
	}
	n := 1
	for i := 1; i < len(xs); i++ {
		if xs[i] != xs[n-1] {
			xs[n] = xs[i]
			n++
		}
	}
	return xs[:n]
}
