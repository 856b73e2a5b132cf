// Package ignore implements the directory-stack ignore engine: per-path
// verdicts built from override globs, a deepest-frame-wins stack of
// per-directory ignore files, a file-type filter, and the hidden-file
// rule. Generalized from the flat last-match-wins rule list in
// pkg/aideignore/aideignore.go into the frame-stack model spec.md §4.C
// describes, with pattern parsing grounded on
// original_source/src/gitignore.rs.
package ignore

import (
	"fmt"
	"strings"

	"github.com/veloxsearch/velox/internal/glob"
)

// Kind identifies which ignore-file source a rule came from. Within one
// frame, rules are evaluated in ascending Kind order so a later kind's
// match overrides an earlier kind's, matching spec.md §4.C's fixed
// intra-frame precedence: explicit < global < VCS-exclude < VCS-ignore <
// plain.
type Kind int

const (
	KindExplicit Kind = iota
	KindGlobal
	KindVCSExclude
	KindVCSIgnore
	KindPlain
)

func (k Kind) String() string {
	switch k {
	case KindExplicit:
		return "explicit"
	case KindGlobal:
		return "global"
	case KindVCSExclude:
		return "vcs-exclude"
	case KindVCSIgnore:
		return "vcs-ignore"
	default:
		return "plain"
	}
}

// rule is one compiled, parsed line from an ignore file or override list.
type rule struct {
	kind     Kind
	source   string // file path, or "<override>"
	line     int
	raw      string
	g        *glob.Glob
	negation bool
	dirOnly  bool
}

func (r *rule) matches(relPath string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}
	return r.g.Match(relPath)
}

// ParseError reports a malformed ignore-file line. It never aborts the
// file it came from — compileLines collects every ParseError and keeps
// going, per spec.md §4.C's "partial error" failure semantics.
type ParseError struct {
	Source string
	Line   int
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %q: %s", e.Source, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// compileLines parses the lines of one ignore file (or an override-glob
// list, when source is "<override>") into rules of the given kind. Blank
// lines and full-line comments ('#') are skipped; a leading '\#' or '\!'
// escapes a literal '#' or '!'; a trailing, non-escaped '/' marks a
// directory-only pattern and is stripped before compiling.
func compileLines(kind Kind, source string, lines []string) ([]*rule, []error) {
	var rules []*rule
	var errs []error

	for i, line := range lines {
		lineNo := i + 1
		text := strings.TrimRight(line, "\r\n")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		negation := false
		switch {
		case strings.HasPrefix(text, "\\#"), strings.HasPrefix(text, "\\!"):
			text = text[1:]
		case strings.HasPrefix(text, "!"):
			negation = true
			text = text[1:]
		}
		if text == "" {
			continue
		}

		dirOnly := strings.HasSuffix(text, "/") && !strings.HasSuffix(text, "\\/")
		body := text
		if dirOnly {
			body = strings.TrimSuffix(body, "/")
		}
		if body == "" {
			continue
		}

		g, opts := compilePattern(body)
		compiled, err := glob.Parse(g, opts)
		if err != nil {
			errs = append(errs, &ParseError{Source: source, Line: lineNo, Text: line, Err: err})
			continue
		}

		rules = append(rules, &rule{
			kind:     kind,
			source:   source,
			line:     lineNo,
			raw:      line,
			g:        compiled,
			negation: negation,
			dirOnly:  dirOnly,
		})
	}

	return rules, errs
}

// compilePattern applies spec.md §4.C's path-normalization rule to a
// single ignore-file pattern body (dir-only trailing slash already
// stripped): a pattern with no '/' anywhere matches at any depth; one
// that begins with '/' is anchored to the ignore file's directory (the
// leading slash is stripped so glob.Parse doesn't see a bare, unanchored
// pattern and re-add the any-depth prefix); one with an embedded '/' is
// anchored implicitly and, like the leading-slash case, forces
// RequireLiteralSeparator so a bare '*' can't cross into a different
// directory component.
func compilePattern(body string) (string, glob.Options) {
	opts := glob.Options{RequireLiteralSeparator: true}

	if strings.HasPrefix(body, "/") {
		opts.Anchored = true
		return strings.TrimPrefix(body, "/"), opts
	}
	if strings.ContainsRune(body, '/') {
		opts.Anchored = true
		return body, opts
	}
	return body, opts
}
