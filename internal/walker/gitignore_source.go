package walker

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	gi "github.com/sabhiram/go-gitignore"
)

// ignoreSource is the IgnoreMatcher contract spec.md §1 treats as an
// external black box: matched(path, isDir) → {None, Whitelist, Ignore}.
// It is backed by github.com/sabhiram/go-gitignore, whose only exported
// query is a boolean MatchesPath — which already folds negation into its
// answer and so can't tell us "explicitly whitelisted by a negated rule"
// apart from "no rule matched at all". We recover that distinction by
// compiling the same lines twice: once as given (ignoreGI, used to decide
// Ignore) and once with every leading "!" stripped (anyGI, used only to
// decide whether *some* line matched at all). If ignoreGI says not-ignored
// but anyGI says something matched, the path was explicitly whitelisted by
// a negated rule.
type ignoreSource struct {
	dir      string // directory the patterns are relative to; "" for patterns not tied to a directory (overrides, AddIgnore lines, the global gitignore)
	ignoreGI *gi.GitIgnore
	anyGI    *gi.GitIgnore
}

// newIgnoreSourceFromFile compiles an ignore file into an ignoreSource. The
// returned error is an *IgnoreFileParseError and is non-fatal: the rest of
// the directory's matchers are unaffected and the walk continues. A missing
// file, or a dir that is not a directory (a file walk root), is not an
// error; it yields (nil, nil).
func newIgnoreSourceFromFile(dir, filename string) (*ignoreSource, error) {
	path := filepath.Join(dir, filename)
	lines, err := readLines(path)
	if err != nil {
		if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
			return nil, nil
		}
		return nil, &IgnoreFileParseError{Path: path, Err: err}
	}
	src, err := compileIgnoreSource(dir, lines)
	if err != nil {
		return nil, &IgnoreFileParseError{Path: path, Err: err}
	}
	return src, nil
}

// newIgnoreSourceFromLines compiles an explicit list of gitignore-syntax
// lines not anchored to a directory on disk — used for the lines added
// with WalkerBuilder.AddIgnore and for the override matcher,
// both of which apply regardless of which directory is currently being
// visited.
func newIgnoreSourceFromLines(lines []string) (*ignoreSource, error) {
	return compileIgnoreSource("", lines)
}

func compileIgnoreSource(dir string, lines []string) (*ignoreSource, error) {
	ignoreGI := gi.CompileIgnoreLines(lines...)

	positive := make([]string, 0, len(lines))
	anyMatched := false
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		anyMatched = true
		positive = append(positive, strings.TrimPrefix(l, "!"))
	}
	if !anyMatched {
		return nil, nil
	}
	anyGI := gi.CompileIgnoreLines(positive...)

	return &ignoreSource{dir: dir, ignoreGI: ignoreGI, anyGI: anyGI}, nil
}

// matched implements the IgnoreMatcher contract for one ignore source.
// path is made relative to s.dir before being handed to go-gitignore, which
// matches relative to the directory the patterns came from; when s.dir is
// absolute (an ancestor added by addParents) a relative path is first made
// absolute against the working directory.
func (s *ignoreSource) matched(path string, isDir bool) Match[string] {
	if s == nil {
		return NoneMatch[string]()
	}
	checkPath := path
	if s.dir != "" {
		if filepath.IsAbs(s.dir) && !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return NoneMatch[string]()
		}
		checkPath = rel
	}
	checkPath = filepath.ToSlash(checkPath)
	if isDir {
		checkPath += "/"
	}

	if s.ignoreGI.MatchesPath(checkPath) {
		return IgnoreMatch(checkPath)
	}
	if s.anyGI.MatchesPath(checkPath) {
		return WhitelistMatch(checkPath)
	}
	return NoneMatch[string]()
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}
