package globset

import (
	"sort"
	"testing"

	"github.com/veloxsearch/velox/internal/glob"
)

func buildSet(t *testing.T, opts glob.Options, patterns []string) *Set {
	t.Helper()
	b := NewBuilder(opts)
	for _, p := range patterns {
		if _, err := b.Add(p); err != nil {
			t.Fatalf("Add(%q): %v", p, err)
		}
	}
	s, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestSetDispatchStrategies(t *testing.T) {
	patterns := []string{
		"*.go",             // Extension
		"Makefile",         // BasenameLiteral
		"/root/exact.txt",  // Literal
		"vendor/**",        // Prefix
		"**/testdata",      // BasenameLiteral
		"a[bc]*.log",       // RequiredExtension
		"src/**/*.rs",      // Regex (fallback)
	}
	s := buildSet(t, glob.Options{RequireLiteralSeparator: true}, patterns)

	cases := []struct {
		path string
		want []int
	}{
		{"main.go", []int{0}},
		{"Makefile", []int{1}},
		{"sub/Makefile", []int{1}},
		{"/root/exact.txt", []int{2}},
		{"vendor/a/b/pkg.go", []int{0, 3}},
		{"x/testdata", []int{4}},
		{"ab.log", []int{5}},
		{"zz.log", []int{}},
		{"src/a/b/main.rs", []int{6}},
	}

	for _, c := range cases {
		got := s.Matches(NewCandidate(c.path))
		sort.Ints(got)
		if !intsEqual(got, c.want) {
			t.Errorf("Matches(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestSetCaseInsensitive(t *testing.T) {
	s := buildSet(t, glob.Options{CaseInsensitive: true}, []string{"*.GO", "README"})

	if !s.IsMatch("main.go") {
		t.Error("expected case-insensitive extension match for main.go")
	}
	if !s.IsMatch("readme") {
		t.Error("expected case-insensitive basename match for readme")
	}
}

func TestSetEmpty(t *testing.T) {
	s := buildSet(t, glob.Options{}, nil)
	if s.IsMatch("anything") {
		t.Error("empty set should match nothing")
	}
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
