package walk

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/veloxsearch/velox/internal/ignore"
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

func collectPaths(t *testing.T, root string, stack *ignore.Stack) []string {
	t.Helper()
	work, errs := Walk(context.Background(), root, stack, Options{})

	var paths []string
	done := make(chan struct{})
	go func() {
		for e := range errs {
			t.Logf("walk error: %v", e)
		}
		close(done)
	}()
	for w := range work {
		rel, err := filepath.Rel(root, w.Path)
		if err != nil {
			t.Fatal(err)
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	<-done
	sort.Strings(paths)
	return paths
}

func TestWalkSkipsIgnored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.go"), "package main\n")
	writeFile(t, filepath.Join(root, "skip.log"), "x\n")
	writeFile(t, filepath.Join(root, "sub", "nested.go"), "package sub\n")
	writeFile(t, filepath.Join(root, ".ignore"), "*.log\n")

	s := ignore.NewStack()
	s.SeedFromParents(root)

	paths := collectPaths(t, root, s)
	// .ignore itself is a dotfile, so the default hidden-file rule (layer
	// 4) keeps it out of the walk's own output too.
	want := []string{"keep.go", "sub/nested.go"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestRunPoolCollectsErrors(t *testing.T) {
	queue := make(chan Work, 3)
	queue <- Work{Path: "a"}
	queue <- Work{Path: "b"}
	queue <- Work{Path: "ok"}
	close(queue)

	errs := RunPool(context.Background(), queue, 2, func(ctx context.Context, w Work) error {
		if w.Path == "ok" {
			return nil
		}
		return &WalkError{Path: w.Path, Err: os.ErrNotExist}
	})
	if len(errs) != 2 {
		t.Fatalf("errs = %v, want 2 entries", errs)
	}
}
