package walker

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnoreSource_BasicAndNegation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gitignore"), "*.log\nbuild/\n!important.log\n")

	src, err := newIgnoreSourceFromFile(dir, ".gitignore")
	if err != nil {
		t.Fatalf("newIgnoreSourceFromFile: %v", err)
	}

	cases := []struct {
		name   string
		path   string
		isDir  bool
		expect verdict
	}{
		{"matches glob", filepath.Join(dir, "app.log"), false, verdictIgnore},
		{"no match", filepath.Join(dir, "app.txt"), false, verdictNone},
		{"dir pattern matches dir", filepath.Join(dir, "build"), true, verdictIgnore},
		{"negation whitelists", filepath.Join(dir, "important.log"), false, verdictWhitelist},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := src.matched(c.path, c.isDir)
			if got.verdict != c.expect {
				t.Errorf("matched(%q, %v) verdict = %v, want %v", c.path, c.isDir, got.verdict, c.expect)
			}
		})
	}
}

func TestIgnoreSource_MissingFileIsNotError(t *testing.T) {
	dir := t.TempDir()
	src, err := newIgnoreSourceFromFile(dir, ".gitignore")
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if src != nil {
		t.Fatalf("missing file should yield a nil source, got %+v", src)
	}
}

func TestIgnoreSource_MalformedLineReported(t *testing.T) {
	dir := t.TempDir()
	// "[" opens an unterminated character class. compileIgnoreSource has no
	// error path of its own (go-gitignore's CompileIgnoreLines returns no
	// error), so when loading reports nothing the test skips; any error that
	// is reported must be an *IgnoreFileParseError.
	writeFile(t, filepath.Join(dir, ".gitignore"), "[unterminated\n")

	_, err := newIgnoreSourceFromFile(dir, ".gitignore")
	if err == nil {
		t.Skip("go-gitignore accepted the malformed pattern; nothing to assert")
	}
	if _, ok := err.(*IgnoreFileParseError); !ok {
		t.Errorf("got %T, want *IgnoreFileParseError", err)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile(%q): %v", path, err)
	}
}
