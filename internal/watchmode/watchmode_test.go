package watchmode

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherRunsImmediatelyOnStart(t *testing.T) {
	dir := t.TempDir()
	var runs int32

	w, err := New(Config{
		Paths:         []string{dir},
		DebounceDelay: 20 * time.Millisecond,
		Run: func() error {
			atomic.AddInt32(&runs, 1)
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Fatalf("runs after Start = %d, want 1", got)
	}
}

func TestWatcherDebouncesBurstOfChanges(t *testing.T) {
	dir := t.TempDir()
	var runs int32

	w, err := New(Config{
		Paths:         []string{dir},
		DebounceDelay: 50 * time.Millisecond,
		Run: func() error {
			atomic.AddInt32(&runs, 1)
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "a.txt")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)

	if got := atomic.LoadInt32(&runs); got != 2 {
		t.Fatalf("runs = %d, want 2 (one immediate + one debounced)", got)
	}
}

func TestIgnoredTempName(t *testing.T) {
	cases := map[string]bool{
		".hidden":  true,
		"foo~":     true,
		"foo.swp":  true,
		"foo.tmp":  true,
		"main.go":  false,
		"a.b.tmp~": true,
	}
	for name, want := range cases {
		if got := ignoredTempName(name); got != want {
			t.Errorf("ignoredTempName(%q) = %v, want %v", name, got, want)
		}
	}
}
