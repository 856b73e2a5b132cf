package ignore

import (
	"os"
	"path/filepath"
	"strings"
)

// Frame holds every rule compiled for one directory level, across all
// ignore-file kinds, in ascending Kind order (so a later-appearing rule
// in the slice has equal-or-higher precedence per spec.md §4.C). An empty
// frame (no readable ignore file at that directory) is still a valid,
// pushable Frame — stack symmetry matters more than skipping empty work.
type Frame struct {
	dir   string
	rules []*rule
}

// relPath returns path relative to the frame's directory, using '/'
// regardless of GOOS, since glob patterns are always '/'-separated.
func (f *Frame) relPath(path string) string {
	rel, err := filepath.Rel(f.dir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// check evaluates every rule in the frame against path in order, letting
// a later match overwrite an earlier one (spec.md §4.C: "within a frame,
// last pattern wins"). Returns ok=false if no rule in the frame matched.
func (f *Frame) check(path string, isDir bool) (verdict Verdict, reason Reason, ok bool) {
	rel := f.relPath(path)
	for _, r := range f.rules {
		if !r.matches(rel, isDir) {
			continue
		}
		ok = true
		if r.negation {
			verdict = Whitelist
		} else {
			verdict = Ignore
		}
		reason = Reason{Layer: LayerIgnoreFile, Kind: r.kind, Source: r.source, Line: r.line, Raw: r.raw}
	}
	return verdict, reason, ok
}

// defaultPlainIgnoreFile names the plain per-directory ignore file kind (".*ignore"
// conventions vary by tool; velox's own plain kind uses this name,
// generalized from aideignore's single hard-coded filename into a
// parameter so a caller can add more plain-kind names).
const defaultPlainIgnoreFile = ".ignore"

// BuildFrame reads dir's ignore files (of every applicable kind except
// override globs, which live outside the stack) and compiles them into a
// Frame. vcsExclude/vcsIgnore supply pre-read file contents for the
// VCS-exclude (".git/info/exclude" + core.excludesFile) and VCS-ignore
// (".gitignore") kinds respectively, since locating those is the Stack's
// job, not the Frame's. Parse errors are collected, never fatal.
func BuildFrame(dir string, explicitLines, globalLines, vcsExcludeLines, vcsIgnoreLines, extraPlainFiles []string) (*Frame, []error) {
	f := &Frame{dir: dir}
	var allErrs []error

	add := func(kind Kind, source string, lines []string) {
		rules, errs := compileLines(kind, source, lines)
		f.rules = append(f.rules, rules...)
		allErrs = append(allErrs, errs...)
	}

	add(KindExplicit, "<explicit>", explicitLines)
	add(KindGlobal, "<global>", globalLines)
	add(KindVCSExclude, filepath.Join(dir, ".git", "info", "exclude"), vcsExcludeLines)
	add(KindVCSIgnore, filepath.Join(dir, ".gitignore"), vcsIgnoreLines)

	plainNames := append([]string{defaultPlainIgnoreFile}, extraPlainFiles...)
	for _, name := range plainNames {
		path := filepath.Join(dir, name)
		lines, err := readLines(path)
		if err != nil {
			if !os.IsNotExist(err) {
				allErrs = append(allErrs, err)
			}
			continue
		}
		add(KindPlain, path, lines)
	}

	return f, allErrs
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}
