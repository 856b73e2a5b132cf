package search

import (
	"strings"
	"testing"
)

type collectSink struct {
	events []Event
}

func (c *collectSink) Emit(e Event) error {
	c.events = append(c.events, e)
	return nil
}

func mustPlan(t *testing.T, pattern string, opts Options) *Plan {
	t.Helper()
	p, err := NewPlan(pattern, opts)
	if err != nil {
		t.Fatalf("NewPlan(%q): %v", pattern, err)
	}
	return p
}

func TestSearchBytesBasic(t *testing.T) {
	data := []byte("alpha\nbeta needle\ngamma\ndelta needle\nepsilon\n")
	p := mustPlan(t, "needle", Options{})

	var sink collectSink
	stats, err := SearchBytes(p, data, Options{}, &sink)
	if err != nil {
		t.Fatal(err)
	}
	if stats.MatchCount != 2 || stats.LineCount != 2 {
		t.Fatalf("stats = %+v, want 2/2", stats)
	}

	var lines []int
	for _, e := range sink.events {
		if e.Kind == EventMatch {
			lines = append(lines, e.LineNumber)
		}
	}
	if len(lines) != 2 || lines[0] != 2 || lines[1] != 4 {
		t.Errorf("matched lines = %v, want [2 4]", lines)
	}
}

func TestSearchBytesContext(t *testing.T) {
	data := []byte("l1\nl2\nneedle\nl4\nl5\nl6\nneedle\nl8\n")
	p := mustPlan(t, "needle", Options{})
	opts := Options{ContextBefore: 1, ContextAfter: 1}

	var sink collectSink
	if _, err := SearchBytes(p, data, opts, &sink); err != nil {
		t.Fatal(err)
	}

	var kinds []EventKind
	for _, e := range sink.events {
		kinds = append(kinds, e.Kind)
	}
	// l2(ctx) needle(match) l4(ctx) -- l6(ctx) needle(match) l8(ctx)
	want := []EventKind{EventContext, EventMatch, EventContext, EventSeparator, EventContext, EventMatch, EventContext}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestSearchBytesInverted(t *testing.T) {
	data := []byte("keep\nneedle\nkeep2\n")
	p := mustPlan(t, "needle", Options{Invert: true})

	var sink collectSink
	stats, err := SearchBytes(p, data, Options{Invert: true}, &sink)
	if err != nil {
		t.Fatal(err)
	}
	if stats.LineCount != 2 {
		t.Fatalf("LineCount = %d, want 2", stats.LineCount)
	}
}

func TestSearchBytesStopAfterFirstMatch(t *testing.T) {
	data := []byte("a needle\nb needle\nc needle\n")
	p := mustPlan(t, "needle", Options{})

	var sink collectSink
	stats, err := SearchBytes(p, data, Options{StopAfterFirstMatch: true}, &sink)
	if err != nil {
		t.Fatal(err)
	}
	if stats.LineCount != 1 {
		t.Fatalf("LineCount = %d, want 1", stats.LineCount)
	}
}

func TestNewPlanRejectsLiteralTerminator(t *testing.T) {
	_, err := NewPlan("foo\nbar", Options{})
	if err == nil {
		t.Fatal("expected error for literal newline in pattern")
	}
	var target *ErrLiteralTerminator
	if !asErrLiteralTerminator(err, &target) {
		t.Fatalf("got %v (%T), want *ErrLiteralTerminator", err, err)
	}
}

func asErrLiteralTerminator(err error, target **ErrLiteralTerminator) bool {
	e, ok := err.(*ErrLiteralTerminator)
	if ok {
		*target = e
	}
	return ok
}

func TestSearchReaderStreaming(t *testing.T) {
	data := "one\ntwo needle\nthree\nfour needle\n"
	p := mustPlan(t, "needle", Options{})

	var sink collectSink
	stats, err := SearchReader(p, strings.NewReader(data), Options{}, 0, &sink)
	if err != nil {
		t.Fatal(err)
	}
	if stats.LineCount != 2 {
		t.Fatalf("LineCount = %d, want 2", stats.LineCount)
	}
}

func TestSearchReaderLineTooLong(t *testing.T) {
	data := strings.Repeat("x", 100) + "\n"
	p := mustPlan(t, "x", Options{})

	var sink collectSink
	_, err := SearchReader(p, strings.NewReader(data), Options{}, 16, &sink)
	if err == nil {
		t.Fatal("expected ErrLineTooLong")
	}
	if _, ok := err.(*ErrLineTooLong); !ok {
		t.Fatalf("got %T, want *ErrLineTooLong", err)
	}
}

func TestSearchReaderPartialFinalLine(t *testing.T) {
	data := "needle no trailing newline"
	p := mustPlan(t, "needle", Options{})

	var sink collectSink
	stats, err := SearchReader(p, strings.NewReader(data), Options{}, 0, &sink)
	if err != nil {
		t.Fatal(err)
	}
	if stats.LineCount != 1 {
		t.Fatalf("LineCount = %d, want 1", stats.LineCount)
	}
}

func TestPrefilterSelectsLongestLiteral(t *testing.T) {
	p := mustPlan(t, "(foo|bar)needlepoint", Options{})
	if p.prefilter == nil {
		t.Fatal("expected a prefilter to be built")
	}
	if string(p.prefilter.lit) != "needlepoint" {
		t.Errorf("prefilter literal = %q, want %q", p.prefilter.lit, "needlepoint")
	}
}

func TestPrefilterCaseInsensitive(t *testing.T) {
	data := []byte("FOO NEEDLE bar\n")
	p := mustPlan(t, "needle", Options{CaseInsensitive: true})

	var sink collectSink
	stats, err := SearchBytes(p, data, Options{}, &sink)
	if err != nil {
		t.Fatal(err)
	}
	if stats.LineCount != 1 {
		t.Fatalf("LineCount = %d, want 1", stats.LineCount)
	}
}
