package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/veloxsearch/velox/internal/search"
)

func TestPrintStandardWithLineNumbers(t *testing.T) {
	events := []search.Event{
		{Kind: search.EventContext, LineNumber: 1, Line: []byte("before")},
		{Kind: search.EventMatch, LineNumber: 2, Line: []byte("hello world"), Matches: [][2]int{{6, 11}}},
		{Kind: search.EventSeparator},
		{Kind: search.EventMatch, LineNumber: 9, Line: []byte("world again"), Matches: [][2]int{{0, 5}}},
	}

	var buf bytes.Buffer
	p := New(&buf, Options{LineNumber: true})
	matched, err := p.PrintFile("file.txt", search.Stats{LineCount: 2}, events)
	if err != nil {
		t.Fatal(err)
	}
	if !matched {
		t.Fatal("expected matched=true")
	}

	out := buf.String()
	for _, want := range []string{"1-before", "2:hello world", "--", "9:world again"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintCountMode(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, Options{Mode: ModeCount, WithFilename: true})
	_, err := p.PrintFile("file.txt", search.Stats{LineCount: 3}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "file.txt:3\n" {
		t.Errorf("got %q", got)
	}
}

func TestPrintFilesWithMatches(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, Options{Mode: ModeFilesWithMatches})
	matched, err := p.PrintFile("file.txt", search.Stats{LineCount: 0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if matched {
		t.Error("expected matched=false for zero-match file")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestApplyReplace(t *testing.T) {
	line := []byte("hello world")
	got := applyReplace(line, [][2]int{{6, 11}}, "THERE")
	if got != "hello THERE" {
		t.Errorf("got %q", got)
	}
}
