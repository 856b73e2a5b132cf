package glob

import (
	"testing"

	"github.com/bmatcuk/doublestar/v4"
)

func TestClassifyShapes(t *testing.T) {
	cases := []struct {
		pattern string
		want    Strategy
	}{
		{"*.rs", StrategyExtension},
		{"src/**/*.rs", StrategyRegex},
		{"foo", StrategyBasenameLiteral},
		{"/abs/lit.txt", StrategyLiteral},
		{"**/foo", StrategyBasenameLiteral},
	}
	for _, c := range cases {
		g, err := Parse(c.pattern, Options{})
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.pattern, err)
		}
		if g.Strategy() != c.want {
			t.Errorf("Parse(%q).Strategy() = %s, want %s", c.pattern, g.Strategy(), c.want)
		}
	}
}

func TestMatchBasic(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.rs", "main.rs", true},
		{"*.rs", "src/main.rs", true}, // no '/' in "*.rs" itself: matches at any depth
		{"**/*.rs", "src/main.rs", true},
		{"src/**", "src/a/b/c.go", true},
		{"src/**", "lib/a.go", false},
		{"foo", "foo", true},
		{"foo", "bar/foo", true}, // no '/' in "foo": matches at any depth
		{"**/foo", "bar/foo", true},
		{"a/**/b", "a/b", true},
		{"a/**/b", "a/x/y/b", true},
		{"[abc].txt", "a.txt", true},
		{"[abc].txt", "d.txt", false},
		{"[!abc].txt", "d.txt", true},
		{"a{b,c,d}e", "abe", true},
		{"a{b,c,d}e", "ace", true},
		{"a{b,c,d}e", "afe", false},
	}
	for _, c := range cases {
		g, err := Parse(c.pattern, Options{})
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.pattern, err)
		}
		if got := g.Match(c.path); got != c.want {
			t.Errorf("Parse(%q).Match(%q) = %v, want %v", c.pattern, c.path, got, c.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		pattern string
		wantErr error
	}{
		{"a**b", ErrInvalidRecursive},
		{"**x", ErrInvalidRecursive},
		{"[abc", ErrUnclosedClass},
		{"a}", ErrUnopenedAlternates},
		{"{a,b", ErrUnclosedAlternates},
		{"{a,{b,c}}", ErrNestedAlternates},
	}
	for _, c := range cases {
		_, err := Parse(c.pattern, Options{})
		if err == nil {
			t.Fatalf("Parse(%q): want error, got nil", c.pattern)
		}
		pe, ok := err.(*ParseError)
		if !ok {
			t.Fatalf("Parse(%q): err = %T, want *ParseError", c.pattern, err)
		}
		if pe.Unwrap() != c.wantErr {
			t.Errorf("Parse(%q): underlying err = %v, want %v", c.pattern, pe.Unwrap(), c.wantErr)
		}
	}
}

func TestInvalidRange(t *testing.T) {
	_, err := Parse("[z-a]", Options{})
	if err == nil {
		t.Fatal("Parse([z-a]): want error, got nil")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("err = %T, want *ParseError", err)
	}
	if _, ok := pe.Unwrap().(*InvalidRangeError); !ok {
		t.Errorf("underlying err = %T, want *InvalidRangeError", pe.Unwrap())
	}
}

// TestAgainstDoublestar cross-checks the hand-written matcher against
// bmatcuk/doublestar's independent implementation for a corpus of
// patterns that don't exercise the '{a,b}' extension (doublestar doesn't
// enable brace expansion by default, and Match doesn't take options).
func TestAgainstDoublestar(t *testing.T) {
	// Restricted to patterns that contain at least one literal '/': those
	// never trigger this package's implicit any-depth prefix (see Parse),
	// so their regex shape lines up directly with doublestar's globstar
	// semantics. A slash-less pattern like "*.go" is deliberately
	// gitignore-flavored here (it matches at any depth) where doublestar's
	// plain glob.Match is not, so it is excluded from this oracle rather
	// than asserting a divergence the two were never meant to agree on.
	cases := []struct {
		pattern string
		paths   []string
	}{
		{"**/*.go", []string{"main.go", "src/main.go", "src/a/b/main.go", "README.txt"}},
		{"src/**", []string{"src", "src/main.go", "src/a/b/c.go", "lib/main.go"}},
		{"**/internal/**/*.go", []string{"internal/glob/glob.go", "a/internal/x/y/glob.go", "internal/glob.go", "x/glob.go"}},
		{"a/b/c", []string{"a/b/c", "a/b/d", "x/a/b/c"}},
	}

	for _, c := range cases {
		g, err := Parse(c.pattern, Options{RequireLiteralSeparator: true})
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.pattern, err)
		}
		for _, path := range c.paths {
			got := g.Match(path)
			want, err := doublestar.Match(c.pattern, path)
			if err != nil {
				t.Fatalf("doublestar.Match(%q, %q): %v", c.pattern, path, err)
			}
			if got != want {
				t.Errorf("Match(%q, %q) = %v, doublestar = %v", c.pattern, path, got, want)
			}
		}
	}
}
