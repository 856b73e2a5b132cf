package walk

import (
	"context"
	"os"
	"path/filepath"

	"github.com/veloxsearch/velox/internal/ignore"
)

// Options configures a walk.
type Options struct {
	// FollowSymlinks makes the walker stat through symlinked entries
	// rather than skipping them.
	FollowSymlinks bool
	// QueueSize sizes the Work channel's buffer; 0 uses a sane default.
	QueueSize int
}

// Walk descends root, consulting stack's frames at every directory via
// ignore.Stack.Push/Pop, and returns a channel of Work items plus a
// channel of non-fatal per-path errors (walk errors never abort the
// whole traversal, per spec.md §7). Both channels are closed once the
// walk (and its single producer goroutine) finishes, whether that's
// because the tree is exhausted or ctx was canceled.
//
// The root itself is never checked against the ignore layers — only a
// root directory's children are — matching the convention that naming a
// path explicitly always searches it. A root that is not a directory is
// sent as the walk's only Work item.
func Walk(ctx context.Context, root string, stack *ignore.Stack, opts Options) (<-chan Work, <-chan error) {
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	work := make(chan Work, queueSize)
	errs := make(chan error, 16)

	go func() {
		defer close(work)
		defer close(errs)
		if info, err := os.Stat(root); err == nil && !info.IsDir() {
			select {
			case work <- Work{Path: root}:
			case <-ctx.Done():
			}
			return
		}
		walkDir(ctx, root, stack, opts, work, errs)
	}()

	return work, errs
}

func walkDir(ctx context.Context, dir string, stack *ignore.Stack, opts Options, work chan<- Work, errs chan<- error) {
	if ctx.Err() != nil {
		return
	}

	for _, err := range stack.Push(dir) {
		sendErr(ctx, errs, err)
	}
	defer stack.Pop()

	entries, err := os.ReadDir(dir)
	if err != nil {
		sendErr(ctx, errs, &WalkError{Path: dir, Err: err})
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		path := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()

		if entry.Type()&os.ModeSymlink != 0 {
			if !opts.FollowSymlinks {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				sendErr(ctx, errs, &WalkError{Path: path, Err: err})
				continue
			}
			isDir = info.IsDir()
		}

		verdict, _ := stack.Check(path, isDir)
		if verdict == ignore.Ignore {
			continue
		}

		if isDir {
			walkDir(ctx, path, stack, opts, work, errs)
			continue
		}

		select {
		case work <- Work{Path: path}:
		case <-ctx.Done():
			return
		}
	}
}

func sendErr(ctx context.Context, errs chan<- error, err error) {
	select {
	case errs <- err:
	case <-ctx.Done():
	}
}

// WalkError decorates a traversal failure with the path that caused it,
// per spec.md §7's "each decorated with the offending path" requirement.
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string { return "walk: " + e.Path + ": " + e.Err.Error() }
func (e *WalkError) Unwrap() error { return e.Err }
