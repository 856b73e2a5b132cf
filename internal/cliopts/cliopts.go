// Package cliopts translates os.Args into the typed option structs
// internal/search, internal/ignore, and internal/printer consume.
//
// Grounded on original_source/src/args.rs for the flag surface and
// precedence rules (the -u/-uu/-uuu stepwise relaxation, the
// -i/-s/-S case-handling interaction), and on cmd/aide/helpers.go's
// parseFlag/hasFlag shape for keeping a thin top-level dispatch in
// cmd/velox/main.go rather than inlining flag logic there.
package cliopts

import (
	"fmt"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/veloxsearch/velox/internal/printer"
	"github.com/veloxsearch/velox/internal/search"
)

// Args is the fully parsed, typed form of a velox invocation.
type Args struct {
	Patterns []string
	Paths    []string

	Search  search.Options
	Printer printer.Options

	Hidden         bool
	Follow         bool
	NoIgnore       bool
	NoIgnoreParent bool
	NoIgnoreVCS    bool
	BinaryAsText   bool

	Overrides  []string // -g, "!"-prefixed means negated
	TypeSelect []string
	TypeNegate []string
	TypeAdd    []string // "NAME:GLOB"
	TypeClear  []string
	TypeList   bool

	MaxCount   int
	NoMessages bool
	Workers    int
	Watch      bool
	ConfigPath string
	FilesOnly  bool
}

// Parse parses argv (not including the program name) into Args.
func Parse(argv []string) (*Args, error) {
	fs := flag.NewFlagSet("velox", flag.ContinueOnError)

	patterns := fs.StringArrayP("regexp", "e", nil, "pattern to search for (repeatable; combined as alternation)")
	fixedStrings := fs.BoolP("fixed-strings", "F", false, "treat pattern as a literal string")
	wordBoundary := fs.BoolP("word-regexp", "w", false, "surround pattern with word-boundary assertions")
	ignoreCase := fs.BoolP("ignore-case", "i", false, "case-insensitive search")
	caseSensitive := fs.BoolP("case-sensitive", "s", false, "case-sensitive search")
	smartCase := fs.BoolP("smart-case", "S", false, "case-insensitive iff pattern is all lowercase")
	invert := fs.BoolP("invert-match", "v", false, "invert line matching")
	lineNumberOn := fs.BoolP("line-number", "n", false, "force line numbers on")
	lineNumberOff := fs.BoolP("no-line-number", "N", false, "force line numbers off")
	before := fs.IntP("before-context", "B", 0, "lines of leading context")
	after := fs.IntP("after-context", "A", 0, "lines of trailing context")
	context := fs.IntP("context", "C", 0, "lines of context on both sides")
	countOnly := fs.BoolP("count", "c", false, "print only the match count per file")
	filesWithMatches := fs.BoolP("files-with-matches", "l", false, "print only paths with matches")
	maxCount := fs.IntP("max-count", "m", 0, "stop after N matches per file")
	globs := fs.StringArrayP("glob", "g", nil, "override glob, prefix ! to negate")
	typeSelect := fs.StringArrayP("type", "t", nil, "select file type")
	typeNegate := fs.StringArrayP("type-not", "T", nil, "negate file type")
	typeAdd := fs.StringArray("type-add", nil, "NAME:GLOB, add to a file type")
	typeClear := fs.StringArray("type-clear", nil, "clear a file type's definition")
	typeList := fs.Bool("type-list", false, "list all file types and exit")
	hidden := fs.Bool("hidden", false, "search hidden files and directories")
	follow := fs.Bool("follow", false, "follow symbolic links")
	noIgnore := fs.Bool("no-ignore", false, "don't respect ignore files")
	noIgnoreParent := fs.Bool("no-ignore-parent", false, "don't respect ignore files in parent directories")
	noIgnoreVCS := fs.Bool("no-ignore-vcs", false, "don't respect .gitignore/VCS exclude files")
	replace := fs.StringP("replace", "r", "", "replace matched text in printed output")
	filesOnly := fs.Bool("files", false, "print every file that would be searched and exit")
	noMessages := fs.Bool("no-messages", false, "silence non-fatal error messages")
	workers := fs.IntP("threads", "j", 0, "number of worker threads (0 = automatic)")
	watch := fs.Bool("watch", false, "re-run the search when a searched file changes")
	configPath := fs.String("config-path", "", "path to a velox config file")
	colorMode := fs.String("color", "auto", `when to colorize output: "auto", "always", "never"`)
	unrestricted := fs.CountP("unrestricted", "u", "relax ignore rules: -u disables ignore files, -uu also shows hidden files, -uuu also treats binary files as text")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	args := &Args{
		Patterns:       *patterns,
		Paths:          fs.Args(),
		Hidden:         *hidden,
		Follow:         *follow,
		NoIgnore:       *noIgnore,
		NoIgnoreParent: *noIgnoreParent,
		NoIgnoreVCS:    *noIgnoreVCS,
		Overrides:      *globs,
		TypeSelect:     *typeSelect,
		TypeNegate:     *typeNegate,
		TypeAdd:        *typeAdd,
		TypeClear:      *typeClear,
		TypeList:       *typeList,
		MaxCount:       *maxCount,
		NoMessages:     *noMessages,
		Workers:        *workers,
		Watch:          *watch,
		ConfigPath:     *configPath,
		FilesOnly:      *filesOnly,
		Search: search.Options{
			Invert:     *invert,
			MaxMatches: *maxCount,
		},
	}

	if len(args.Patterns) == 0 && fs.NArg() > 0 && !*filesOnly {
		args.Patterns = []string{args.Paths[0]}
		args.Paths = args.Paths[1:]
	}
	if *fixedStrings {
		for i, p := range args.Patterns {
			args.Patterns[i] = quoteLiteral(p)
		}
	}
	if *wordBoundary {
		for i, p := range args.Patterns {
			args.Patterns[i] = `\b(?:` + p + `)\b`
		}
	}

	switch {
	case *caseSensitive:
		args.Search.CaseInsensitive = false
	case *ignoreCase:
		args.Search.CaseInsensitive = true
	case *smartCase:
		args.Search.CaseInsensitive = allLowercase(args.Patterns)
	}

	switch unrestricted {
	case 1:
		args.NoIgnore = true
	case 2:
		args.NoIgnore = true
		args.Hidden = true
	default:
		if unrestricted >= 3 {
			args.NoIgnore = true
			args.Hidden = true
			args.BinaryAsText = true
		}
	}
	args.Search.BinaryDetection = !args.BinaryAsText

	if *context > 0 {
		*before, *after = *context, *context
	}
	args.Search.ContextBefore = *before
	args.Search.ContextAfter = *after

	args.Printer = printer.Options{
		LineNumber: !*lineNumberOff && (*lineNumberOn || len(args.Paths) != 1),
		Replace:    decodeEscapes(*replace),
		Color:      *colorMode == "always",
	}
	switch {
	case *countOnly:
		args.Printer.Mode = printer.ModeCount
	case *filesWithMatches:
		args.Printer.Mode = printer.ModeFilesWithMatches
	case *filesOnly:
		args.Printer.Mode = printer.ModeFilesOnly
	}

	return args, nil
}

func allLowercase(patterns []string) bool {
	for _, p := range patterns {
		if p != strings.ToLower(p) {
			return false
		}
	}
	return true
}

func quoteLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// decodeEscapes decodes \n, \r, \t, and \xHH sequences in a flag value;
// malformed sequences are emitted literally, per spec.md §6.
func decodeEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case 'x':
			if i+3 < len(s) {
				if n, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
					b.WriteByte(byte(n))
					i += 3
					continue
				}
			}
			b.WriteByte(s[i])
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// CombinedPattern joins multiple -e patterns as an alternation, per
// spec.md §6 ("one or more regexes; combined as alternation").
func CombinedPattern(patterns []string) string {
	if len(patterns) == 1 {
		return patterns[0]
	}
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		parts[i] = "(?:" + p + ")"
	}
	return strings.Join(parts, "|")
}

// ValidateTypeName returns an error if name isn't a syntactically valid
// --type-add NAME:GLOB argument.
func ValidateTypeName(spec string) (name, glob string, err error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cliopts: invalid --type-add value %q, want NAME:GLOB", spec)
	}
	return parts[0], parts[1], nil
}
