package walker

import (
	"path/filepath"
	"sort"
	"strings"

	gi "github.com/sabhiram/go-gitignore"
)

// TypesBuilder builds a FileTypeMatcher from a set of file type definitions
// and a set of selections over them. The zero value is ready to use and
// starts out with no definitions.
type TypesBuilder struct {
	types map[string]*FileTypeDef
	order []string // insertion order, for deterministic Definitions()
	sels  []selection
}

// NewTypesBuilder returns an empty builder.
func NewTypesBuilder() *TypesBuilder {
	return &TypesBuilder{types: make(map[string]*FileTypeDef)}
}

// Add registers a glob under a file type name. The name "all" and any name
// containing ':' are rejected with InvalidDefinitionError.
func (b *TypesBuilder) Add(name, glob string) error {
	if name == "all" || strings.Contains(name, ":") {
		return &InvalidDefinitionError{Name: name}
	}
	if b.types == nil {
		b.types = make(map[string]*FileTypeDef)
	}
	def, ok := b.types[name]
	if !ok {
		def = &FileTypeDef{name: name}
		b.types[name] = def
		b.order = append(b.order, name)
	}
	def.globs = append(def.globs, glob)
	return nil
}

// AddDef registers a definition given in "name:glob" form.
func (b *TypesBuilder) AddDef(def string) error {
	i := strings.IndexByte(def, ':')
	if i < 0 {
		return &InvalidDefinitionError{Name: def}
	}
	name, glob := def[:i], def[i+1:]
	if name == "" || glob == "" {
		return &InvalidDefinitionError{Name: def}
	}
	return b.Add(name, glob)
}

// AddDefaults loads the built-in (language, globs) table.
func (b *TypesBuilder) AddDefaults() *TypesBuilder {
	for _, dt := range defaultTypes {
		for _, g := range dt.globs {
			// Default definitions are known-good; the name never violates
			// Add's syntax rules.
			_ = b.Add(dt.name, g)
		}
	}
	return b
}

// Select marks a file type for inclusion. The name "all" selects every
// type defined so far.
func (b *TypesBuilder) Select(name string) *TypesBuilder {
	if name == "all" {
		for _, n := range b.order {
			b.sels = append(b.sels, selection{kind: selectionSelect, name: n})
		}
		return b
	}
	b.sels = append(b.sels, selection{kind: selectionSelect, name: name})
	return b
}

// Negate marks a file type for exclusion. The name "all" negates every
// type defined so far.
func (b *TypesBuilder) Negate(name string) *TypesBuilder {
	if name == "all" {
		for _, n := range b.order {
			b.sels = append(b.sels, selection{kind: selectionNegate, name: n})
		}
		return b
	}
	b.sels = append(b.sels, selection{kind: selectionNegate, name: name})
	return b
}

// Clear removes a file type definition. Selections already made that
// reference it still fail at Build time.
func (b *TypesBuilder) Clear(name string) *TypesBuilder {
	if _, ok := b.types[name]; ok {
		delete(b.types, name)
		for i, n := range b.order {
			if n == name {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
	return b
}

// Definitions returns the current file type definitions, sorted by name.
func (b *TypesBuilder) Definitions() []FileTypeDef {
	names := append([]string(nil), b.order...)
	sort.Strings(names)
	defs := make([]FileTypeDef, 0, len(names))
	for _, n := range names {
		d := *b.types[n]
		globs := append([]string(nil), d.globs...)
		sort.Strings(globs)
		d.globs = globs
		defs = append(defs, d)
	}
	return defs
}

// Build compiles the current definitions and selections into a
// FileTypeMatcher. Selections referencing an unknown name fail with
// UnrecognizedFileTypeError.
func (b *TypesBuilder) Build() (*FileTypeMatcher, error) {
	hasSelected := false
	for _, s := range b.sels {
		if !s.isNegated() {
			hasSelected = true
			break
		}
	}

	selections := make([]selection, 0, len(b.sels))
	var globs []compiledGlob
	for _, s := range b.sels {
		def, ok := b.types[s.name]
		if !ok {
			return nil, &UnrecognizedFileTypeError{Name: s.name}
		}
		isel := len(selections)
		s.def = *def
		selections = append(selections, s)
		for iglob, g := range def.globs {
			for _, alt := range expandBraces(g) {
				// Validate eagerly so Build fails at build time rather than
				// matched() silently treating a malformed pattern as "never
				// matches" on every call.
				if _, err := filepath.Match(alt, "x"); err != nil {
					return nil, &GlobCompileError{Pattern: g, Err: err}
				}
				globs = append(globs, compiledGlob{
					pattern:   alt,
					gi:        gi.CompileIgnoreLines(alt),
					selection: isel,
					globIndex: iglob,
				})
			}
		}
	}

	return newFileTypeMatcher(b.Definitions(), selections, hasSelected, globs), nil
}

// expandBraces expands shell-style brace alternation
// (e.g. "*.{rs,foo}" -> ["*.rs", "*.foo"]) the way the original crate's
// globset dependency does, since neither filepath.Match nor go-gitignore's
// pattern syntax understands "{...}" on its own. A pattern with no (or an
// unbalanced) brace is returned unchanged as its sole alternative. Groups
// may nest, and a pattern may contain more than one group.
func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}
	depth := 0
	close := -1
	for i := open; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				close = i
			}
		}
		if close >= 0 {
			break
		}
	}
	if close < 0 {
		return []string{pattern}
	}

	prefix, inner, suffix := pattern[:open], pattern[open+1:close], pattern[close+1:]
	suffixes := expandBraces(suffix)

	var out []string
	for _, alt := range splitTopLevel(inner) {
		for _, a := range expandBraces(alt) {
			for _, rest := range suffixes {
				out = append(out, prefix+a+rest)
			}
		}
	}
	return out
}

// splitTopLevel splits s on commas that aren't nested inside a further
// brace group.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
