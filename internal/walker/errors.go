package walker

import "fmt"

// InvalidDefinitionError is returned by TypesBuilder.Add/AddDef when a file
// type name is "all" or contains a colon.
type InvalidDefinitionError struct {
	Name string
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("walker: invalid file type definition: %q", e.Name)
}

// UnrecognizedFileTypeError is returned by TypesBuilder.Build when a
// selection references a name with no definition.
type UnrecognizedFileTypeError struct {
	Name string
}

func (e *UnrecognizedFileTypeError) Error() string {
	return fmt.Sprintf("walker: unrecognized file type: %q", e.Name)
}

// GlobCompileError is returned by TypesBuilder.Build when a definition glob
// fails to compile. OverrideBuilder.Build does not validate its globs and
// never returns it.
type GlobCompileError struct {
	Pattern string
	Err     error
}

func (e *GlobCompileError) Error() string {
	return fmt.Sprintf("walker: bad glob %q: %v", e.Pattern, e.Err)
}

func (e *GlobCompileError) Unwrap() error { return e.Err }

// IgnoreFileParseError records an ignore file that exists but could not be
// read. compileIgnoreSource has no error path (go-gitignore's
// CompileIgnoreLines returns none), so a malformed glob inside a readable
// ignore file does not produce this error. It is non-fatal: the directory's
// other ignore files still apply, and iteration continues. It is returned
// alongside the IgnoreNode built for the directory and reported on that
// directory's DirEntry (for a walk root and its ancestors, on the root's
// entry).
type IgnoreFileParseError struct {
	Path string
	Err  error
}

func (e *IgnoreFileParseError) Error() string {
	return fmt.Sprintf("walker: parsing %s: %v", e.Path, e.Err)
}

func (e *IgnoreFileParseError) Unwrap() error { return e.Err }

// IOError records a failure to read a directory, resolve metadata, or open
// an ignore file. It carries the path and, when known, the depth at which
// the failure occurred. Non-fatal: the walk continues with the next entry.
type IOError struct {
	Path  string
	Depth int
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("walker: %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
