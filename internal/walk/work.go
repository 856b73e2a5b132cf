// Package walk implements the single-producer/multiple-consumer file
// traversal pipeline described in spec.md §5: a walker goroutine
// descends the directory tree, consulting an internal/ignore.Stack at
// each level, and pushes Work items onto a shared queue; a bounded pool
// of workers drains the queue and drives the line searcher against each
// file.
//
// Grounded on pkg/watcher/watcher.go's directory-walk shape (recursive
// descent with a skip-dir predicate) generalized from a one-shot
// filepath.Walk into explicit recursion so ignore-frame Push/Pop can
// bracket each directory's subtree, and on pkg/findings/runner.go's
// bounded-concurrency pattern (a channel-backed limit around per-item
// goroutines), modernized to golang.org/x/sync/errgroup's Group.SetLimit.
package walk

// Work is one unit handed to a worker: a regular file to search. Walk
// sets only Path; nothing in this module sets IsStdin.
type Work struct {
	Path    string
	IsStdin bool
}
