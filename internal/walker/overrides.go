package walker

// Override is a user-supplied matcher consulted before any ignore file
// (spec.md §2, §4.2). It uses the same gitignore-style glob syntax and
// precedence as an ignore file — a glob prefixed with "!" whitelists, any
// other glob ignores — but isn't tied to a directory: the same patterns
// apply at every level of the walk, like git's pathspec matching.
type Override struct {
	src *ignoreSource
}

// OverrideBuilder builds an Override from a list of glob lines.
type OverrideBuilder struct {
	lines []string
}

// NewOverrideBuilder returns an empty builder.
func NewOverrideBuilder() *OverrideBuilder {
	return &OverrideBuilder{}
}

// Add appends one glob. A leading "!" whitelists instead of ignoring.
func (b *OverrideBuilder) Add(glob string) *OverrideBuilder {
	b.lines = append(b.lines, glob)
	return b
}

// Build compiles the accumulated globs into an Override.
func (b *OverrideBuilder) Build() (*Override, error) {
	if len(b.lines) == 0 {
		return &Override{}, nil
	}
	src, err := newIgnoreSourceFromLines(b.lines)
	if err != nil {
		return nil, err
	}
	return &Override{src: src}, nil
}

// matched evaluates the override against path, which the IgnoreNode caller
// has already made relative to the walk's root (overrides have no
// per-directory anchor the way ignore files do; they apply uniformly
// across the whole walk, like a git pathspec).
func (o *Override) matched(path string, isDir bool) Match[string] {
	if o == nil || o.src == nil {
		return NoneMatch[string]()
	}
	return o.src.matched(path, isDir)
}
