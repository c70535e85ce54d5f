package walker

// verdict is the tag of a Match[T].
type verdict int

const (
	verdictNone verdict = iota
	verdictWhitelist
	verdictIgnore
)

// Match is the three-valued result produced by every matcher in the ignore
// stack: silent (None), explicitly included (Whitelist), or explicitly
// excluded (Ignore). T carries matcher-specific detail about what matched
// (a Glob for the file-type matcher, a pattern string for a gitignore
// source, the path itself for the hidden-file filter).
type Match[T any] struct {
	verdict verdict
	value   T
}

// NoneMatch reports that a matcher had no opinion about a path.
func NoneMatch[T any]() Match[T] {
	return Match[T]{verdict: verdictNone}
}

// WhitelistMatch reports that a matcher explicitly included a path.
func WhitelistMatch[T any](v T) Match[T] {
	return Match[T]{verdict: verdictWhitelist, value: v}
}

// IgnoreMatch reports that a matcher explicitly excluded a path.
func IgnoreMatch[T any](v T) Match[T] {
	return Match[T]{verdict: verdictIgnore, value: v}
}

func (m Match[T]) IsNone() bool      { return m.verdict == verdictNone }
func (m Match[T]) IsWhitelist() bool { return m.verdict == verdictWhitelist }
func (m Match[T]) IsIgnore() bool    { return m.verdict == verdictIgnore }

// Value returns the matcher-specific detail attached to a Whitelist or
// Ignore verdict. It is the zero value of T for a None verdict.
func (m Match[T]) Value() T { return m.value }

// ShouldSkip reduces a composed verdict to the walker's boolean decision:
// skip the path if and only if it was ignored.
func (m Match[T]) ShouldSkip() bool { return m.verdict == verdictIgnore }
