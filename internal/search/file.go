package search

import (
	"io"
	"os"

	mmap "github.com/blevesearch/mmap-go"
)

// mmapThreshold is the file size above which SearchFile prefers
// memory-mapping the file over reading it fully into a heap buffer, to
// avoid a large allocation-and-copy for files that are already page-
// cached by the OS.
const mmapThreshold = 4 << 20 // 4 MiB

// SearchFile searches the file at path in buffer mode, choosing between
// a plain read and an mmap-backed view depending on its size. Binary
// detection, if enabled, runs once against the file's prefix before the
// line-by-line search begins.
func SearchFile(plan *Plan, path string, opts Options, sink Sink) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Stats{}, err
	}

	if info.Size() == 0 {
		return Stats{}, nil
	}

	if info.Size() < mmapThreshold {
		data, err := io.ReadAll(f)
		if err != nil {
			return Stats{}, err
		}
		if opts.BinaryDetection && looksBinary(data) {
			return Stats{}, &ErrBinary{}
		}
		return SearchBytes(plan, data, opts, sink)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// Falls back to streaming rather than failing outright: mmap can
		// fail for reasons unrelated to the file's content (e.g. certain
		// virtual filesystems), and a large file is exactly the case
		// streaming mode exists for.
		if _, serr := f.Seek(0, io.SeekStart); serr != nil {
			return Stats{}, err
		}
		return SearchReader(plan, f, opts, 0, sink)
	}
	defer m.Unmap()

	if opts.BinaryDetection && looksBinary(m) {
		return Stats{}, &ErrBinary{}
	}
	return SearchBytes(plan, m, opts, sink)
}
