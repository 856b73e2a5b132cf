// Package watchmode implements --watch: re-running a velox search
// whenever a file under a searched root changes, debounced so a burst
// of saves (an editor's atomic-rename-on-save, a `go generate` run)
// triggers one re-run instead of many.
//
// Grounded on pkg/watcher/watcher.go almost directly: same fsnotify
// Watcher wrapping, same debounce-via-sync.Once-and-time.After shape,
// same directory-add-on-Create handling for newly created
// subdirectories. The domain changes from "notify a handler which
// files changed, for memory bookkeeping" to "re-run a search"; velox
// only needs "something changed, go again," so the pending-file map
// collapses to a single RunFunc call rather than a per-path handler
// fan-out.
package watchmode

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceDelay is how long Watcher waits after the first change
// of a burst before re-running (changes during the wait are folded into
// that one run), short enough to feel live without re-running once per
// keystroke of an editor's autosave.
const DefaultDebounceDelay = 300 * time.Millisecond

// DefaultSkipDirs are directories never worth watching: VCS metadata,
// build output, and dependency caches that only generate noise.
// Carried over from pkg/watcher/watcher.go's DefaultSkipDirs verbatim.
var DefaultSkipDirs = map[string]bool{
	".git": true, ".svn": true, ".hg": true,
	"node_modules": true, "dist": true, ".next": true, ".nuxt": true,
	"__pycache__": true, ".venv": true, "venv": true, ".tox": true,
	"vendor": true, "target": true, "build": true, ".gradle": true,
	"bin": true, "obj": true, ".idea": true, ".vscode": true,
}

// RunFunc performs one search pass; its error is surfaced to the
// caller's error-reporting path rather than killing the watch loop.
type RunFunc func() error

// Config configures a Watcher.
type Config struct {
	Paths         []string
	DebounceDelay time.Duration
	SkipDirs      map[string]bool
	Run           RunFunc
	OnError       func(error)
}

// Watcher re-runs Config.Run whenever a watched path changes.
type Watcher struct {
	fs     *fsnotify.Watcher
	cfg    Config
	skip   map[string]bool
	stop   chan struct{}
	stopOn sync.Once
	wg     sync.WaitGroup

	mu      sync.Mutex
	dirty   bool
	flushOn sync.Once
}

// New creates a Watcher; call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if cfg.DebounceDelay == 0 {
		cfg.DebounceDelay = DefaultDebounceDelay
	}
	skip := make(map[string]bool, len(DefaultSkipDirs)+len(cfg.SkipDirs))
	for k, v := range DefaultSkipDirs {
		skip[k] = v
	}
	for k, v := range cfg.SkipDirs {
		skip[k] = v
	}
	return &Watcher{fs: fsw, cfg: cfg, skip: skip, stop: make(chan struct{})}, nil
}

// Start walks Config.Paths adding every non-skipped directory to the
// fsnotify watch list, runs Config.Run once immediately, then begins
// watching for subsequent changes in the background.
func (w *Watcher) Start() error {
	for _, root := range w.cfg.Paths {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if !info.IsDir() {
				return nil
			}
			if w.skip[info.Name()] {
				return filepath.SkipDir
			}
			_ = w.fs.Add(path)
			return nil
		})
		if err != nil {
			return err
		}
	}

	if err := w.cfg.Run(); err != nil && w.cfg.OnError != nil {
		w.cfg.OnError(err)
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop halts the watch loop and releases the underlying fsnotify
// watcher. Safe to call more than once.
func (w *Watcher) Stop() error {
	w.stopOn.Do(func() { close(w.stop) })
	w.wg.Wait()
	return w.fs.Close()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case <-w.fs.Errors:
			// non-fatal: fsnotify surfaces transient watch errors
			// (e.g. a removed directory) that don't invalidate the
			// remaining watch set.
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.skip[filepath.Base(event.Name)] {
				_ = w.fs.Add(event.Name)
			}
			return
		}
	}

	if ignoredTempName(filepath.Base(event.Name)) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	w.queueRun()
}

func ignoredTempName(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".swp") ||
		strings.HasSuffix(name, ".tmp")
}

func (w *Watcher) queueRun() {
	w.mu.Lock()
	w.dirty = true
	w.flushOn.Do(func() {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			select {
			case <-time.After(w.cfg.DebounceDelay):
				w.flush()
			case <-w.stop:
				return
			}
		}()
	})
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	was := w.dirty
	w.dirty = false
	w.flushOn = sync.Once{}
	w.mu.Unlock()

	if !was {
		return
	}
	if err := w.cfg.Run(); err != nil && w.cfg.OnError != nil {
		w.cfg.OnError(err)
	}
}
