package search

import (
	"bytes"
	"io"
)

// defaultMaxLineBytes bounds how large a single line is allowed to grow
// in streaming mode before SearchReader gives up and reports
// ErrLineTooLong, per spec.md §4.D. Buffer mode has no such limit since
// the whole file is already resident.
const defaultMaxLineBytes = 1 << 20 // 1 MiB

const streamChunkSize = 64 * 1024

// maxLineBytes returns the explicit streaming line-length cap when it is
// positive, falling back to defaultMaxLineBytes otherwise.
func (o Options) maxLineBytes(explicit int) int {
	if explicit > 0 {
		return explicit
	}
	return defaultMaxLineBytes
}

// SearchReader runs plan over r incrementally, never holding more than
// one line (plus read-ahead) in memory at a time. Unlike SearchBytes it
// can fail mid-stream: *ErrLineTooLong if a line is longer than
// capacity, or *ErrBinary if binary detection finds a NUL in the first
// read.
//
// A partial final line (EOF reached with no trailing terminator) is
// still searched, matching grep's traditional "last line without a
// newline" leniency.
func SearchReader(plan *Plan, r io.Reader, opts Options, capacity int, sink Sink) (Stats, error) {
	run := newSearchRun(plan, opts, sink)
	term := plan.term
	cap_ := opts.maxLineBytes(capacity)

	buf := make([]byte, 0, streamChunkSize)
	chunk := make([]byte, streamChunkSize)
	lineNo := 0
	checkedBinary := false
	var readErr error

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if opts.BinaryDetection && !checkedBinary {
				checkedBinary = true
				if looksBinary(chunk[:n]) {
					return run.stats, &ErrBinary{}
				}
			}
			buf = append(buf, chunk[:n]...)

			for {
				idx := bytes.IndexByte(buf, term)
				if idx < 0 {
					break
				}
				if idx > cap_ {
					return run.stats, &ErrLineTooLong{Capacity: cap_}
				}
				line := buf[:idx]
				lineNo++
				stop, perr := run.processLine(lineNo, line)
				buf = buf[idx+1:]
				if perr != nil {
					return run.stats, perr
				}
				if stop {
					return run.stats, nil
				}
			}
			if len(buf) > cap_ {
				return run.stats, &ErrLineTooLong{Capacity: cap_}
			}
		}
		if err != nil {
			readErr = err
			break
		}
	}

	if readErr != io.EOF {
		return run.stats, readErr
	}

	if len(buf) > 0 {
		lineNo++
		if _, err := run.processLine(lineNo, buf); err != nil {
			return run.stats, err
		}
	}

	return run.stats, nil
}
