// Command velox is a line-oriented content search tool: given one or
// more regex patterns and a set of root paths, it walks the roots
// respecting ignore files and file-type filters, searches matching
// files concurrently, and prints results in one of several formats.
//
// Grounded on cmd/aide/main.go's plain top-level wiring style (read
// flags, build components, run, map errors to an exit code) rather
// than a cobra/cmd-tree structure, since velox's surface is a single
// flat command rather than the teacher's subcommand tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/veloxsearch/velox/internal/cliopts"
	"github.com/veloxsearch/velox/internal/config"
	"github.com/veloxsearch/velox/internal/glob"
	"github.com/veloxsearch/velox/internal/ignore"
	"github.com/veloxsearch/velox/internal/printer"
	"github.com/veloxsearch/velox/internal/search"
	"github.com/veloxsearch/velox/internal/version"
	"github.com/veloxsearch/velox/internal/walk"
	"github.com/veloxsearch/velox/internal/watchmode"
)

// Exit codes per spec.md §6: 0 = at least one match, 1 = no matches,
// 2 = a usage or fatal I/O error.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr *os.File) int {
	if len(argv) == 1 && (argv[0] == "--version" || argv[0] == "-V") {
		fmt.Fprintln(stdout, version.String())
		return exitMatch
	}

	args, err := cliopts.Parse(argv)
	if err != nil {
		fmt.Fprintln(stderr, "velox:", err)
		return exitError
	}

	cfgPath := args.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, "velox: loading config:", err)
		return exitError
	}
	if args.Workers == 0 {
		args.Workers = cfg.Workers
	}
	if args.Workers == 0 {
		args.Workers = walk.DefaultWorkerCount()
	}
	if args.Search.ContextBefore == 0 {
		args.Search.ContextBefore = cfg.ContextBefore
	}
	if args.Search.ContextAfter == 0 {
		args.Search.ContextAfter = cfg.ContextAfter
	}

	stack, typeDefs, err := buildStack(args, cfg)
	if err != nil {
		fmt.Fprintln(stderr, "velox:", err)
		return exitError
	}
	if args.TypeList {
		cliopts.PrintTypeList(stdout, typeDefs)
		return exitMatch
	}

	roots := args.Paths
	if len(roots) == 0 {
		roots = []string{"."}
	}

	out, colorEnabled := printer.AutoColor(stdout)
	if args.Printer.Color {
		colorEnabled = true
	}
	args.Printer.Color = colorEnabled
	args.Printer.WithFilename = len(roots) > 1 || isDir(roots[0])

	app := &application{
		args:   args,
		roots:  roots,
		stack:  stack,
		out:    out,
		stderr: stderr,
	}

	if args.FilesOnly || len(args.Patterns) == 0 {
		matched := app.listFiles()
		if matched {
			return exitMatch
		}
		return exitNoMatch
	}

	plan, err := search.NewPlan(cliopts.CombinedPattern(args.Patterns), args.Search)
	if err != nil {
		fmt.Fprintln(stderr, "velox:", err)
		return exitError
	}
	app.plan = plan

	if args.Watch {
		return app.runWatch()
	}

	matched, fatal := app.runOnce()
	if fatal {
		return exitError
	}
	if matched {
		return exitMatch
	}
	return exitNoMatch
}

type application struct {
	args   *cliopts.Args
	roots  []string
	stack  *ignore.Stack
	plan   *search.Plan
	out    io.Writer
	stderr *os.File
}

func (a *application) runWatch() int {
	w, err := watchmode.New(watchmode.Config{
		Paths: a.roots,
		Run: func() error {
			if _, fatal := a.runOnce(); fatal {
				return fmt.Errorf("search failed")
			}
			return nil
		},
		OnError: func(err error) {
			if !a.args.NoMessages {
				fmt.Fprintln(a.stderr, "velox:", err)
			}
		},
	})
	if err != nil {
		fmt.Fprintln(a.stderr, "velox: watch:", err)
		return exitError
	}
	if err := w.Start(); err != nil {
		fmt.Fprintln(a.stderr, "velox: watch:", err)
		return exitError
	}
	defer w.Stop()

	select {} // run until killed; spec.md §6 treats --watch as foreground-blocking
}

// runOnce walks every root, searches matching files with a bounded
// worker pool, and prints results. Returns whether any file matched and
// whether a fatal (non-message) error occurred.
func (a *application) runOnce() (matched bool, fatal bool) {
	ctx := context.Background()
	var anyMatch bool
	var outMu sync.Mutex

	for _, root := range a.roots {
		queue, errs := walk.Walk(ctx, root, a.stack, walk.Options{FollowSymlinks: a.args.Follow})

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for err := range errs {
				if !a.args.NoMessages {
					fmt.Fprintln(a.stderr, "velox:", err)
				}
			}
		}()

		workerErrs := walk.RunPool(ctx, queue, a.args.Workers, func(ctx context.Context, w walk.Work) error {
			matchedFile, err := a.searchOne(w.Path, &outMu)
			if err != nil {
				var binErr *search.ErrBinary
				if !errors.As(err, &binErr) && !a.args.NoMessages {
					// A binary file is skipped silently, per spec.md §4.D:
					// it's not an error, just nothing to search.
					fmt.Fprintln(a.stderr, "velox:", w.Path+":", err)
				}
				return nil // a per-file error is non-fatal, per spec.md §7
			}
			if matchedFile {
				outMu.Lock()
				anyMatch = true
				outMu.Unlock()
			}
			return nil
		})
		wg.Wait()
		for _, werr := range workerErrs {
			if !a.args.NoMessages {
				fmt.Fprintln(a.stderr, "velox:", werr)
			}
		}
	}

	return anyMatch, false
}

func (a *application) searchOne(path string, outMu *sync.Mutex) (bool, error) {
	var events []search.Event
	sink := sinkFunc(func(e search.Event) error {
		events = append(events, e)
		return nil
	})

	opts := a.args.Search
	opts.StopAfterFirstMatch = a.args.Printer.Mode == printer.ModeFilesWithMatches
	stats, err := search.SearchFile(a.plan, path, opts, sink)
	if err != nil {
		return false, err
	}

	outMu.Lock()
	defer outMu.Unlock()
	p := printer.New(a.out, a.args.Printer)
	return p.PrintFile(path, stats, events)
}

func (a *application) listFiles() bool {
	ctx := context.Background()
	var any bool
	var outMu sync.Mutex
	p := printer.New(a.out, printer.Options{Mode: printer.ModeFilesOnly})

	for _, root := range a.roots {
		queue, errs := walk.Walk(ctx, root, a.stack, walk.Options{FollowSymlinks: a.args.Follow})
		go func() {
			for err := range errs {
				if !a.args.NoMessages {
					fmt.Fprintln(a.stderr, "velox:", err)
				}
			}
		}()
		walk.RunPool(ctx, queue, a.args.Workers, func(ctx context.Context, w walk.Work) error {
			outMu.Lock()
			defer outMu.Unlock()
			if _, err := p.PrintFile(w.Path, search.Stats{}, nil); err == nil {
				any = true
			}
			return nil
		})
	}
	return any
}

type sinkFunc func(search.Event) error

func (f sinkFunc) Emit(e search.Event) error { return f(e) }

func buildStack(args *cliopts.Args, cfg config.Config) (*ignore.Stack, *ignore.TypeDefs, error) {
	globOpts := glob.Options{}

	defs := ignore.BuiltinTypeDefs()
	for _, spec := range args.TypeAdd {
		name, pattern, err := cliopts.ValidateTypeName(spec)
		if err != nil {
			return nil, nil, err
		}
		defs.Add(name, pattern)
	}
	for _, name := range args.TypeClear {
		defs.Clear(name)
	}

	typeFilter, err := ignore.NewTypeFilter(defs, args.TypeSelect, args.TypeNegate, globOpts)
	if err != nil {
		return nil, nil, err
	}

	opts := []ignore.StackOption{
		ignore.WithTypeFilter(typeFilter),
		ignore.WithHiddenFiles(args.Hidden),
		ignore.WithNoIgnore(args.NoIgnore),
		ignore.WithNoIgnoreVCS(args.NoIgnoreVCS),
	}

	if globalLines, err := readGlobalIgnore(); err == nil && len(globalLines) > 0 {
		opts = append(opts, ignore.WithGlobalLines(globalLines))
	}

	stack := ignore.NewStack(opts...)

	if len(args.Overrides) > 0 {
		ov, errs := ignore.NewOverrideSet(args.Overrides, globOpts)
		if len(errs) > 0 {
			return nil, nil, errs[0]
		}
		stack.SetOverrides(ov)
	}

	if len(args.Paths) > 0 && !args.NoIgnoreParent && !args.NoIgnore {
		stack.SeedFromParents(args.Paths[0])
	} else if len(args.Paths) == 0 && !args.NoIgnoreParent && !args.NoIgnore {
		stack.SeedFromParents(".")
	}

	return stack, defs, nil
}

func readGlobalIgnore() ([]string, error) {
	path := config.GlobalIgnorePath()
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
