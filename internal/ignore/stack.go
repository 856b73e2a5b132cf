package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Stack is the per-directory frame stack the walker pushes/pops as it
// descends and ascends, plus the layers outside the stack (override
// globs, type filter, hidden-file rule) that sit above and below it.
type Stack struct {
	frames []*Frame

	overrides    *overrideSet
	globalLines  []string
	explicit     []string
	extraPlain   []string
	types       *TypeFilter
	hiddenFiles bool
	noIgnore    bool // --no-ignore: skip every ignore-file kind
	noIgnoreVCS bool // --no-ignore-vcs: skip VCS-kind only
}

// NewStack builds an empty Stack configured by opts (global ignore lines
// via WithGlobalLines, explicit ignore lines via WithExplicitLines, a type
// filter via WithTypeFilter, and so on). Callers add override globs via
// SetOverrides before the first Push.
func NewStack(opts ...StackOption) *Stack {
	s := &Stack{}
	for _, o := range opts {
		o(s)
	}
	return s
}

// StackOption configures a Stack at construction time.
type StackOption func(*Stack)

// WithGlobalLines sets the lines of the user's global ignore file (e.g.
// `$XDG_CONFIG_HOME/velox/ignore`), applied at KindGlobal in every frame.
func WithGlobalLines(lines []string) StackOption {
	return func(s *Stack) { s.globalLines = lines }
}

// WithExplicitLines sets the lines of explicitly supplied ignore files,
// applied at KindExplicit (the lowest-priority ignore kind) in every
// frame.
func WithExplicitLines(lines []string) StackOption {
	return func(s *Stack) { s.explicit = lines }
}

// WithExtraPlainFiles adds extra plain-kind ignore file names (beyond
// ".ignore") to look for in every directory.
func WithExtraPlainFiles(names []string) StackOption {
	return func(s *Stack) { s.extraPlain = names }
}

// WithTypeFilter installs the file-type filter (layer 3).
func WithTypeFilter(tf *TypeFilter) StackOption {
	return func(s *Stack) { s.types = tf }
}

// WithHiddenFiles, when true, disables the hidden-file rule (layer 4):
// hidden files are no longer ignored by default. Named for parity with
// ripgrep's --hidden flag (true here means "show hidden files").
func WithHiddenFiles(show bool) StackOption {
	return func(s *Stack) { s.hiddenFiles = show }
}

// WithNoIgnore, when true, disables every ignore-file kind (plain, VCS,
// global, explicit) — only the type filter and hidden-file rule still
// apply. Named for parity with --no-ignore.
func WithNoIgnore(disabled bool) StackOption {
	return func(s *Stack) { s.noIgnore = disabled }
}

// WithNoIgnoreVCS, when true, disables only the VCS-kind ignore files
// (.gitignore, .git/info/exclude, core.excludesFile), leaving plain,
// global, and explicit ignore files in effect. Named for parity with
// --no-ignore-vcs.
func WithNoIgnoreVCS(disabled bool) StackOption {
	return func(s *Stack) { s.noIgnoreVCS = disabled }
}

// SetOverrides installs the override-glob set (layer 1). Overrides come
// from a single global --glob/--iglob family, so there's one set for the
// whole Stack rather than one per frame.
func (s *Stack) SetOverrides(ov *overrideSet) { s.overrides = ov }

// SeedFromParents walks root's ancestors up to the filesystem root,
// compiling their ignore files into frames pushed onto the stack before
// the walk itself begins — so a ".gitignore" above the walk's root still
// applies, per spec.md §4.C. VCS-kind files are read only up to the
// nearest ancestor containing a ".git" directory (and not at all when
// there is none); plain ignore files keep being collected all the way to
// the filesystem root.
func (s *Stack) SeedFromParents(root string) []error {
	if s.noIgnore {
		return nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return []error{err}
	}

	var chain []string
	dir := filepath.Dir(abs)
	gitIdx := -1 // index in chain of the nearest ancestor holding ".git"
	for {
		chain = append(chain, dir)
		if gitIdx < 0 {
			if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
				gitIdx = len(chain) - 1
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	var errs []error
	// Push shallowest-first so the stack's existing top-to-bottom order
	// (Push appends, deepest is always last) is preserved once the real
	// walk's Push calls continue from root downward.
	for i := len(chain) - 1; i >= 0; i-- {
		d := chain[i]
		var vcsIgnore, vcsExclude []string
		if i <= gitIdx && !s.noIgnoreVCS {
			// Every ancestor between the walk root and the repository
			// root is "inside" the repo, so each gets its own .gitignore
			// read; only the repository root itself owns
			// .git/info/exclude.
			vcsIgnore, _ = readLines(filepath.Join(d, ".gitignore"))
			if i == gitIdx {
				vcsExclude = readVCSExclude(d)
			}
		}
		frame, ferrs := BuildFrame(d, s.explicit, s.globalLines, vcsExclude, vcsIgnore, s.extraPlain)
		errs = append(errs, ferrs...)
		s.frames = append(s.frames, frame)
	}
	return errs
}

// Push reads dir's ignore files and pushes a new frame for it.
func (s *Stack) Push(dir string) []error {
	if s.noIgnore {
		s.frames = append(s.frames, &Frame{dir: dir})
		return nil
	}
	var vcsIgnore, vcsExclude []string
	if !s.noIgnoreVCS {
		vcsIgnore, _ = readLines(filepath.Join(dir, ".gitignore"))
		vcsExclude = readVCSExclude(dir)
	}
	explicit, global := s.explicit, s.globalLines
	frame, errs := BuildFrame(dir, explicit, global, vcsExclude, vcsIgnore, s.extraPlain)
	s.frames = append(s.frames, frame)
	return errs
}

// Pop removes the most recently pushed frame.
func (s *Stack) Pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth reports how many frames are currently on the stack.
func (s *Stack) Depth() int { return len(s.frames) }

// Check evaluates path (isDir reports whether it names a directory)
// through all four layers of spec.md §4.C and returns the final Verdict
// and the Reason it was reached for, or a zero Reason when Verdict is
// None.
func (s *Stack) Check(path string, isDir bool) (Verdict, Reason) {
	if s.overrides != nil {
		if v, r, ok := s.overrides.check(path, isDir); ok {
			return v, r
		}
	}

	var frameVerdict Verdict
	var frameReason Reason
	haveFrameVerdict := false
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, r, ok := s.frames[i].check(path, isDir); ok {
			frameVerdict, frameReason = v, r
			haveFrameVerdict = true
			break
		}
	}

	// Layer 3 runs even when a frame already produced a verdict: a type
	// filter's Ignore always overrides a lower-layer (.gitignore) whitelist
	// for a file, so a frame's Whitelist can't be trusted as final until
	// the type filter has had a chance to veto it.
	if !isDir && s.types != nil && s.types.HasSelection() {
		if !s.types.Matches(path) {
			return Ignore, Reason{Layer: LayerTypeFilter}
		}
	}

	if haveFrameVerdict {
		return frameVerdict, frameReason
	}

	if !s.hiddenFiles && isHiddenBasename(path) {
		return Ignore, Reason{Layer: LayerHidden}
	}

	return None, Reason{}
}

func isHiddenBasename(path string) bool {
	base := filepath.Base(path)
	return len(base) > 1 && base[0] == '.' && base != ".."
}

// readVCSExclude reads dir's ".git/info/exclude" plus, when dir sits
// inside a git repository, the file named by that repository's
// core.excludesFile config (the conventional home for a user's global
// git ignore patterns, independent of velox's own global ignore file).
// go-git opens the repository and reads its config for this; a missing
// ".git" directory or config value is not an error here — most
// directories simply aren't (or don't customize) a git repo.
func readVCSExclude(dir string) []string {
	lines, _ := readLines(filepath.Join(dir, ".git", "info", "exclude"))

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return lines
	}
	cfg, err := repo.Config()
	if err != nil {
		return lines
	}
	excludesFile := cfg.Raw.Section("core").Option("excludesFile")
	if excludesFile == "" {
		return lines
	}
	if strings.HasPrefix(excludesFile, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			excludesFile = filepath.Join(home, excludesFile[2:])
		}
	}
	extra, err := readLines(excludesFile)
	if err != nil {
		return lines
	}
	return append(lines, extra...)
}
