package search

import "bytes"

// EventKind distinguishes the three things a search emits, mirroring the
// three-state Idle/InWindow/Terminated machine spec.md §4.D describes for
// match emission: a Match starts (or continues) a window, a Context line
// belongs to a window without itself matching, and a Separator marks the
// boundary between two non-adjacent windows (ripgrep's "--" line).
type EventKind int

const (
	EventMatch EventKind = iota
	EventContext
	EventSeparator
)

// Event is one line-level unit of search output.
type Event struct {
	Kind       EventKind
	LineNumber int      // 1-based
	Line       []byte   // line content, terminator excluded
	Matches    [][2]int // byte offsets of each match within Line; empty for Context/Separator
}

// Sink receives Events in order. Returning an error stops the search
// early (e.g. a printer that only wants the first match).
type Sink interface {
	Emit(Event) error
}

// Stats summarizes a completed search, enough to drive count mode and
// files-with(out)-matches mode without the caller re-deriving anything
// from the Event stream.
type Stats struct {
	MatchCount int // total regex matches across all lines; in inverted mode, one per reported line
	LineCount  int // lines that counted as a match (post-inversion)
}

type lineEntry struct {
	lineNo int
	line   []byte
}

// window tracks the emission state machine across a single search.
type window struct {
	lastEmitted  int // line number of the most recently emitted line; 0 = none yet
	pendingAfter int
	ringBefore   []lineEntry
	before       int
}

func newWindow(before int) *window { return &window{before: before} }

func (w *window) pushHistory(e lineEntry) {
	if w.before == 0 {
		return
	}
	w.ringBefore = append(w.ringBefore, e)
	if len(w.ringBefore) > w.before {
		w.ringBefore = w.ringBefore[1:]
	}
}

func (w *window) flushBefore(sink Sink) error {
	for _, e := range w.ringBefore {
		if e.lineNo <= w.lastEmitted {
			continue
		}
		if err := w.emitSeparatorIfNeeded(sink, e.lineNo); err != nil {
			return err
		}
		if err := sink.Emit(Event{Kind: EventContext, LineNumber: e.lineNo, Line: e.line}); err != nil {
			return err
		}
		w.lastEmitted = e.lineNo
	}
	w.ringBefore = w.ringBefore[:0]
	return nil
}

func (w *window) emitSeparatorIfNeeded(sink Sink, nextLine int) error {
	if w.lastEmitted != 0 && nextLine != w.lastEmitted+1 {
		return sink.Emit(Event{Kind: EventSeparator})
	}
	return nil
}

// findAllInLine runs engine repeatedly over line, collecting every
// non-overlapping match's offsets.
func findAllInLine(engine Engine, line []byte) [][2]int {
	var out [][2]int
	offset := 0
	for offset <= len(line) {
		loc := engine.FindIndex(line[offset:])
		if loc == nil {
			break
		}
		start, end := offset+loc[0], offset+loc[1]
		out = append(out, [2]int{start, end})
		if loc[1] == loc[0] {
			offset = end + 1 // empty match: force progress
		} else {
			offset = end
		}
	}
	return out
}

// searchRun holds the state shared by buffer-mode and streaming-mode
// searches: both reduce to "feed processLine one line at a time".
type searchRun struct {
	plan  *Plan
	opts  Options
	sink  Sink
	w     *window
	stats Stats
}

func newSearchRun(plan *Plan, opts Options, sink Sink) *searchRun {
	return &searchRun{plan: plan, opts: opts, sink: sink, w: newWindow(opts.ContextBefore)}
}

// processLine evaluates one line and emits whatever Events it produces.
// stop is true once StopAfterFirstMatch has been satisfied or MaxMatches
// has been reached. When sink.Emit returns an error, processLine returns
// that error with stop false.
func (r *searchRun) processLine(lineNo int, line []byte) (stop bool, err error) {
	plan := r.plan
	candidateOK := plan.prefilter == nil || plan.prefilter.find(line, 0) >= 0

	var matches [][2]int
	if candidateOK {
		matches = findAllInLine(plan.engine, line)
	}
	isMatch := len(matches) > 0
	if plan.invert {
		isMatch = !isMatch
		matches = nil
	}

	if isMatch {
		if err := r.w.flushBefore(r.sink); err != nil {
			return false, err
		}
		if err := r.w.emitSeparatorIfNeeded(r.sink, lineNo); err != nil {
			return false, err
		}
		if err := r.sink.Emit(Event{Kind: EventMatch, LineNumber: lineNo, Line: line, Matches: matches}); err != nil {
			return false, err
		}
		r.w.lastEmitted = lineNo
		r.w.pendingAfter = r.opts.ContextAfter
		r.stats.LineCount++
		if plan.invert {
			r.stats.MatchCount++
		} else {
			r.stats.MatchCount += len(matches)
		}
		if r.opts.StopAfterFirstMatch {
			return true, nil
		}
		if r.opts.MaxMatches > 0 && r.stats.LineCount >= r.opts.MaxMatches {
			return true, nil
		}
	} else if r.w.pendingAfter > 0 {
		if err := r.sink.Emit(Event{Kind: EventContext, LineNumber: lineNo, Line: line}); err != nil {
			return false, err
		}
		r.w.lastEmitted = lineNo
		r.w.pendingAfter--
	}

	r.w.pushHistory(lineEntry{lineNo: lineNo, line: line})
	return false, nil
}

// SearchBytes runs plan over the whole of data (buffer mode: the file is
// already fully read, memory-mapped or otherwise, into a contiguous
// slice), emitting Events to sink in line order. It stops early, with a
// nil error, if StopAfterFirstMatch is set and a match is found, or if
// sink.Emit returns an error (which is propagated to the caller).
func SearchBytes(plan *Plan, data []byte, opts Options, sink Sink) (Stats, error) {
	run := newSearchRun(plan, opts, sink)
	term := plan.term

	lineNo := 0
	lineStart := 0
	for lineStart < len(data) {
		idx := bytes.IndexByte(data[lineStart:], term)
		var lineEnd int
		atEOF := idx < 0
		if atEOF {
			lineEnd = len(data)
		} else {
			lineEnd = lineStart + idx
		}
		line := data[lineStart:lineEnd]
		lineNo++

		stop, err := run.processLine(lineNo, line)
		if err != nil {
			return run.stats, err
		}
		if stop {
			return run.stats, nil
		}

		if atEOF {
			break
		}
		lineStart = lineEnd + 1
	}

	return run.stats, nil
}
