package walk

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkerCount returns min(logical_cpus, 12), the default worker
// count spec.md §5 names (ripgrep's own default splits the cap at 6 vs.
// 12 depending on core count; velox uses the simpler single cap since
// the distinction mattered for older, smaller machines more than it does
// today).
func DefaultWorkerCount() int {
	n := runtime.NumCPU()
	if n > 12 {
		return 12
	}
	if n < 1 {
		return 1
	}
	return n
}

// WorkerFunc processes one Work item. An error returned here is per-file
// (decorated by the caller with the file's path if needed) and does not
// stop other workers from continuing, matching spec.md §7's "one bad
// file never aborts the run".
type WorkerFunc func(ctx context.Context, w Work) error

// RunPool drains queue with a bounded pool of workers, each invoking fn
// for its Work items. Per-file errors returned by fn are collected and
// returned once every worker has finished; they do not stop the pool.
// Workers block only on dequeue, which is exactly the suspension policy
// spec.md §5 allows.
func RunPool(ctx context.Context, queue <-chan Work, workers int, fn WorkerFunc) []error {
	if workers <= 0 {
		workers = DefaultWorkerCount()
	}

	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)

	var collector errCollector
	for w := range queue {
		w := w
		g.Go(func() error {
			if err := fn(gctx, w); err != nil {
				collector.add(err)
			}
			return nil
		})
		if ctx.Err() != nil {
			break
		}
	}
	g.Wait()

	return collector.errs
}

// errCollector gathers per-file errors from concurrent workers.
type errCollector struct {
	mu   sync.Mutex
	errs []error
}

func (c *errCollector) add(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
}
