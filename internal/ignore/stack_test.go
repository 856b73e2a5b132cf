package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/veloxsearch/velox/internal/glob"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStackFrameLastPatternWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".ignore"), "*.log\n!keep.log\n")

	s := NewStack()
	if errs := s.Push(root); len(errs) != 0 {
		t.Fatalf("Push: %v", errs)
	}

	v, _ := s.Check(filepath.Join(root, "debug.log"), false)
	if v != Ignore {
		t.Errorf("debug.log: got %v, want Ignore", v)
	}
	v, _ = s.Check(filepath.Join(root, "keep.log"), false)
	if v != Whitelist {
		t.Errorf("keep.log: got %v, want Whitelist (last pattern wins)", v)
	}
}

func TestStackDeepestFrameWins(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	writeFile(t, filepath.Join(root, ".ignore"), "*.tmp\n")
	writeFile(t, filepath.Join(sub, ".ignore"), "!important.tmp\n")

	s := NewStack()
	s.Push(root)
	s.Push(sub)

	v, _ := s.Check(filepath.Join(sub, "important.tmp"), false)
	if v != Whitelist {
		t.Errorf("got %v, want Whitelist (deepest frame should win over shallower)", v)
	}
	// The sub frame only has a rule for "important.tmp"; "other.tmp"
	// falls through to the shallower root frame's "*.tmp".
	v, _ = s.Check(filepath.Join(sub, "other.tmp"), false)
	if v != Ignore {
		t.Errorf("other.tmp: got %v, want Ignore (falls through to root frame)", v)
	}
	s.Pop()
	v, _ = s.Check(filepath.Join(root, "x.tmp"), false)
	if v != Ignore {
		t.Errorf("after popping sub, root's *.tmp should still apply: got %v", v)
	}
}

func TestStackOverrideIsFinal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".ignore"), "*.go\n")

	s := NewStack()
	s.Push(root)
	ov, errs := NewOverrideSet([]string{"!*.go"}, glob.Options{})
	if len(errs) != 0 {
		t.Fatalf("NewOverrideSet: %v", errs)
	}
	s.SetOverrides(ov)

	v, r := s.Check(filepath.Join(root, "main.go"), false)
	if v != Whitelist || r.Layer != LayerOverride {
		t.Errorf("got verdict=%v layer=%v, want Whitelist/override", v, r.Layer)
	}
}

func TestStackHiddenFileRule(t *testing.T) {
	root := t.TempDir()
	s := NewStack()
	s.Push(root)

	v, r := s.Check(filepath.Join(root, ".secret"), false)
	if v != Ignore || r.Layer != LayerHidden {
		t.Errorf("got verdict=%v layer=%v, want Ignore/hidden", v, r.Layer)
	}

	s2 := NewStack(WithHiddenFiles(true))
	s2.Push(root)
	v, _ = s2.Check(filepath.Join(root, ".secret"), false)
	if v != None {
		t.Errorf("WithHiddenFiles(true): got %v, want None", v)
	}
}

func TestStackTypeFilter(t *testing.T) {
	root := t.TempDir()
	defs := BuiltinTypeDefs()
	tf, err := NewTypeFilter(defs, []string{"go"}, nil, glob.Options{})
	if err != nil {
		t.Fatal(err)
	}

	s := NewStack(WithTypeFilter(tf))
	s.Push(root)

	v, r := s.Check(filepath.Join(root, "main.go"), false)
	if v != None {
		t.Errorf("main.go: got %v, want None", v)
	}
	v, r = s.Check(filepath.Join(root, "README.md"), false)
	if v != Ignore || r.Layer != LayerTypeFilter {
		t.Errorf("README.md: got verdict=%v layer=%v, want Ignore/type-filter", v, r.Layer)
	}

	// Directories are never subject to the type filter.
	v, _ = s.Check(filepath.Join(root, "somedir"), true)
	if v != None {
		t.Errorf("directory: got %v, want None (type filter only applies to files)", v)
	}
}

func TestStackDirOnlyPattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".ignore"), "build/\n")

	s := NewStack()
	s.Push(root)

	v, _ := s.Check(filepath.Join(root, "build"), true)
	if v != Ignore {
		t.Errorf("directory named build: got %v, want Ignore", v)
	}
	v, _ = s.Check(filepath.Join(root, "build"), false)
	if v != None {
		t.Errorf("file named build: got %v, want None (dir-only pattern)", v)
	}
}

func TestCompilePatternAnchoring(t *testing.T) {
	cases := []struct {
		body     string
		anchored bool
	}{
		{"foo", false},
		{"/foo", true},
		{"a/b", true},
		{"*.go", false},
	}
	for _, c := range cases {
		_, opts := compilePattern(c.body)
		if opts.Anchored != c.anchored {
			t.Errorf("compilePattern(%q).Anchored = %v, want %v", c.body, opts.Anchored, c.anchored)
		}
	}
}
