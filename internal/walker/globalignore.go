package walker

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// resolveGlobalGitignore locates the user's global gitignore file the way
// git itself does: core.excludesFile from ~/.gitconfig if set, otherwise
// $XDG_CONFIG_HOME/git/ignore, falling back to ~/.config/git/ignore. This
// mirrors the doc comment on WalkBuilder::git_global in
// original_source/ignore/src/walk.rs; the distilled spec's table omits it
// entirely. No gitconfig parser appears anywhere in the retrieval pack, so
// this reads the "[core]" section by hand with bufio+strings rather than
// pull in a dependency for what is a few lines of an INI-like format.
func resolveGlobalGitignore() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}

	if path, ok, err := readCoreExcludesFile(filepath.Join(home, ".gitconfig"), home); err != nil {
		return "", err
	} else if ok {
		return path, nil
	}

	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		xdg = filepath.Join(home, ".config")
	}
	candidate := filepath.Join(xdg, "git", "ignore")
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}

// readCoreExcludesFile scans a gitconfig file's [core] section for an
// excludesFile entry, expanding a leading "~/" against home. It returns
// ok=false (no error) when the file doesn't exist or has no such entry.
func readCoreExcludesFile(path, home string) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	inCore := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inCore = strings.EqualFold(strings.Trim(line, "[]"), "core")
			continue
		}
		if !inCore {
			continue
		}
		key, val, found := strings.Cut(line, "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "excludesFile") {
			continue
		}
		val = strings.TrimSpace(val)
		if strings.HasPrefix(val, "~/") {
			val = filepath.Join(home, val[2:])
		}
		return val, true, nil
	}
	if err := scanner.Err(); err != nil {
		return "", false, &IOError{Path: path, Err: err}
	}
	return "", false, nil
}

// loadGlobalGitignore resolves and compiles the global gitignore, returning
// (nil, nil) when none is configured or the file doesn't exist — absence is
// not an error, same as any other optional ignore file.
func loadGlobalGitignore() (*ignoreSource, error) {
	path, err := resolveGlobalGitignore()
	if err != nil || path == "" {
		return nil, err
	}
	dir := filepath.Dir(path)
	src, err := newIgnoreSourceFromFile(dir, filepath.Base(path))
	if src != nil {
		// Global patterns apply relative to the walk root, not to the
		// directory the global file lives in.
		src.dir = ""
	}
	return src, err
}
