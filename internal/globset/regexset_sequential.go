package globset

import "regexp"

// sequentialRegexSet tries each compiled alternative in turn. It backs
// every build (the portable path when built with -tags nohyperscan, and
// the runtime fallback when the host CPU lacks the instructions Hyperscan
// needs).
type sequentialRegexSet struct {
	res []*regexp.Regexp
}

func newSequentialRegexSet(patterns []string) (*sequentialRegexSet, error) {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		res[i] = re
	}
	return &sequentialRegexSet{res: res}, nil
}

func (s *sequentialRegexSet) Match(data []byte) []int {
	var hits []int
	for i, re := range s.res {
		if re.Match(data) {
			hits = append(hits, i)
		}
	}
	return hits
}
