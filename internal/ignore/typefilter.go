package ignore

import (
	"fmt"
	"sort"

	"github.com/veloxsearch/velox/internal/glob"
	"github.com/veloxsearch/velox/internal/globset"
)

// TypeDefs is the mutable registry of named file types (layer 3's
// building blocks), each a set of glob patterns. BuiltinTypeDefs seeds it
// with a fixed starter list; --type-add/--type-clear mutate a copy of it
// before TypeFilter compiles the selection the user actually asked for.
type TypeDefs struct {
	patterns map[string][]string
	order    []string
}

// NewTypeDefs returns an empty registry.
func NewTypeDefs() *TypeDefs {
	return &TypeDefs{patterns: map[string][]string{}}
}

// Add appends globs to name's definition, creating it if new.
func (d *TypeDefs) Add(name string, globs ...string) {
	if _, ok := d.patterns[name]; !ok {
		d.order = append(d.order, name)
	}
	d.patterns[name] = append(d.patterns[name], globs...)
}

// Clear removes name's definition entirely. A no-op if name is unknown.
func (d *TypeDefs) Clear(name string) {
	if _, ok := d.patterns[name]; !ok {
		return
	}
	delete(d.patterns, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Names returns every defined type name, sorted.
func (d *TypeDefs) Names() []string {
	names := make([]string, 0, len(d.patterns))
	for n := range d.patterns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Globs returns the glob patterns registered for name.
func (d *TypeDefs) Globs(name string) []string { return d.patterns[name] }

// List renders the registry as one "name: pat1, pat2, ..." line per type,
// insertion order for builtins followed by any --type-add names in the
// order they were added. `--type-list` itself prints a table sorted by
// name instead (see internal/cliopts.PrintTypeList).
func (d *TypeDefs) List() []string {
	lines := make([]string, 0, len(d.order))
	for _, name := range d.order {
		line := name + ": "
		for i, g := range d.patterns[name] {
			if i > 0 {
				line += ", "
			}
			line += g
		}
		lines = append(lines, line)
	}
	return lines
}

// BuiltinTypeDefs seeds a registry with a starter set of common
// extensions, generalized from the per-ecosystem extension groupings in
// pkg/aideignore/aideignore.go's BuiltinDefaults (which grouped skip-dirs
// by ecosystem; velox groups file extensions by language/ecosystem the
// same way).
func BuiltinTypeDefs() *TypeDefs {
	d := NewTypeDefs()
	d.Add("go", "*.go")
	d.Add("rust", "*.rs")
	d.Add("py", "*.py", "*.pyi")
	d.Add("js", "*.js", "*.jsx", "*.mjs", "*.cjs")
	d.Add("ts", "*.ts", "*.tsx")
	d.Add("c", "*.c", "*.h")
	d.Add("cpp", "*.cpp", "*.cc", "*.cxx", "*.hpp", "*.hh")
	d.Add("java", "*.java")
	d.Add("md", "*.md", "*.markdown")
	d.Add("json", "*.json")
	d.Add("yaml", "*.yaml", "*.yml")
	d.Add("toml", "*.toml")
	d.Add("html", "*.html", "*.htm")
	d.Add("css", "*.css", "*.scss", "*.sass")
	d.Add("sh", "*.sh", "*.bash", "*.zsh")
	d.Add("sql", "*.sql")
	d.Add("proto", "*.proto")
	d.Add("lock", "*.lock", "go.sum", "Cargo.lock", "package-lock.json")
	return d
}

// TypeFilter is the compiled form of a selection/negation over a
// TypeDefs registry, ready to answer layer 3's "does this path belong to
// an allowed type" question in one globset lookup per side.
type TypeFilter struct {
	selected *globset.Set // nil if no --type was given
	negated  *globset.Set // nil if no --type-not was given
}

// NewTypeFilter compiles selected/negated type names against defs.
// Returns an error naming any type that isn't registered.
func NewTypeFilter(defs *TypeDefs, selected, negated []string, opts glob.Options) (*TypeFilter, error) {
	tf := &TypeFilter{}
	if len(selected) > 0 {
		set, err := buildTypeSet(defs, selected, opts)
		if err != nil {
			return nil, err
		}
		tf.selected = set
	}
	if len(negated) > 0 {
		set, err := buildTypeSet(defs, negated, opts)
		if err != nil {
			return nil, err
		}
		tf.negated = set
	}
	return tf, nil
}

func buildTypeSet(defs *TypeDefs, names []string, opts glob.Options) (*globset.Set, error) {
	b := globset.NewBuilder(opts)
	for _, name := range names {
		globs, ok := defs.patterns[name]
		if !ok {
			return nil, fmt.Errorf("ignore: unknown file type %q", name)
		}
		for _, g := range globs {
			if _, err := b.Add(g); err != nil {
				return nil, fmt.Errorf("ignore: type %q: %w", name, err)
			}
		}
	}
	return b.Build()
}

// HasSelection reports whether any --type/--type-not was configured;
// Stack.Check skips layer 3 entirely when this is false.
func (tf *TypeFilter) HasSelection() bool {
	return tf != nil && (tf.selected != nil || tf.negated != nil)
}

// Matches reports whether path is allowed through layer 3: not matched by
// a negated type, and (if any type is selected) matched by one.
func (tf *TypeFilter) Matches(path string) bool {
	if tf == nil {
		return true
	}
	if tf.negated != nil && tf.negated.IsMatch(path) {
		return false
	}
	if tf.selected != nil {
		return tf.selected.IsMatch(path)
	}
	return true
}
