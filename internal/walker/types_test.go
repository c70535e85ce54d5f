package walker

import "testing"

func buildMatcher(t *testing.T, defs [][2]string, selects, negates []string) *FileTypeMatcher {
	t.Helper()
	b := NewTypesBuilder()
	for _, d := range defs {
		if err := b.Add(d[0], d[1]); err != nil {
			t.Fatalf("Add(%q, %q): %v", d[0], d[1], err)
		}
	}
	for _, s := range selects {
		b.Select(s)
	}
	for _, n := range negates {
		b.Negate(n)
	}
	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m
}

func TestFileTypeMatcher_SelectOnly(t *testing.T) {
	defs := [][2]string{
		{"html", "*.html"}, {"html", "*.htm"},
		{"rust", "*.rs"},
		{"js", "*.js"},
		{"foo", "*.rs"}, {"foo", "*.foo"},
	}
	m := buildMatcher(t, defs, []string{"rust"}, nil)

	if got := m.matched("lib.rs", false); !got.IsWhitelist() {
		t.Errorf("lib.rs: got %+v, want Whitelist", got)
	}
	if got := m.matched("index.html", false); !got.IsIgnore() {
		t.Errorf("index.html: got %+v, want Ignore", got)
	}
}

func TestFileTypeMatcher_NegateOnly(t *testing.T) {
	defs := [][2]string{
		{"html", "*.html"}, {"html", "*.htm"},
		{"rust", "*.rs"},
	}
	m := buildMatcher(t, defs, nil, []string{"rust"})

	if got := m.matched("main.rs", false); !got.IsIgnore() {
		t.Errorf("main.rs: got %+v, want Ignore", got)
	}
	if got := m.matched("index.html", false); !got.IsNone() {
		t.Errorf("index.html: got %+v, want None", got)
	}
}

func TestFileTypeMatcher_SelectAndNegate(t *testing.T) {
	// foo:*.{rs,foo} is the literal S5 definition from spec.md §8, relying
	// on brace alternation expanding to the same two globs as writing them
	// out separately.
	defs := [][2]string{
		{"rust", "*.rs"},
		{"foo", "*.{rs,foo}"},
	}
	b := NewTypesBuilder()
	for _, d := range defs {
		if err := b.Add(d[0], d[1]); err != nil {
			t.Fatal(err)
		}
	}
	b.Select("foo")
	b.Negate("rust")
	m, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	// *.rs is claimed by both foo (select, earlier) and rust (negate,
	// later) — the higher-indexed glob wins, so negate overrides select.
	if got := m.matched("main.rs", false); !got.IsIgnore() {
		t.Errorf("main.rs: got %+v, want Ignore (negate overrides earlier select)", got)
	}
	if got := m.matched("main.foo", false); !got.IsWhitelist() {
		t.Errorf("main.foo: got %+v, want Whitelist", got)
	}
}

func TestExpandBraces(t *testing.T) {
	cases := []struct {
		pattern string
		want    []string
	}{
		{"*.rs", []string{"*.rs"}},
		{"*.{rs,foo}", []string{"*.rs", "*.foo"}},
		{"{a,b}.{c,d}", []string{"a.c", "a.d", "b.c", "b.d"}},
		{"*.{", []string{"*.{"}},
	}
	for _, c := range cases {
		got := expandBraces(c.pattern)
		if len(got) != len(c.want) {
			t.Errorf("expandBraces(%q) = %v, want %v", c.pattern, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("expandBraces(%q) = %v, want %v", c.pattern, got, c.want)
				break
			}
		}
	}
}

func TestFileTypeMatcher_DirAlwaysNone(t *testing.T) {
	m := buildMatcher(t, [][2]string{{"rust", "*.rs"}}, []string{"rust"}, nil)
	if got := m.matched("src", true); !got.IsNone() {
		t.Errorf("directory: got %+v, want None", got)
	}
}

func TestFileTypeMatcher_EmptyMatcherNeverMatches(t *testing.T) {
	m := buildMatcher(t, nil, nil, nil)
	if got := m.matched("anything.rs", false); !got.IsNone() {
		t.Errorf("got %+v, want None", got)
	}
}

func TestFileTypeMatcher_UnrecognizedSelection(t *testing.T) {
	b := NewTypesBuilder()
	b.Add("rust", "*.rs")
	b.Select("nope")
	if _, err := b.Build(); err == nil {
		t.Fatal("expected UnrecognizedFileTypeError")
	} else if _, ok := err.(*UnrecognizedFileTypeError); !ok {
		t.Errorf("got %T, want *UnrecognizedFileTypeError", err)
	}
}

func TestTypesBuilder_InvalidName(t *testing.T) {
	b := NewTypesBuilder()
	if err := b.Add("all", "*.go"); err == nil {
		t.Error("expected error adding type named \"all\"")
	}
	if err := b.Add("a:b", "*.go"); err == nil {
		t.Error("expected error adding type with ':' in name")
	}
}

func TestTypesBuilder_SelectAllExpandsToEveryType(t *testing.T) {
	b := NewTypesBuilder()
	b.Add("rust", "*.rs")
	b.Add("js", "*.js")
	b.Select("all")
	m, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := m.matched("main.rs", false); !got.IsWhitelist() {
		t.Errorf("main.rs: got %+v, want Whitelist", got)
	}
	if got := m.matched("app.js", false); !got.IsWhitelist() {
		t.Errorf("app.js: got %+v, want Whitelist", got)
	}
}

func TestTypesBuilder_AddDefaultsIncludesGo(t *testing.T) {
	b := NewTypesBuilder().AddDefaults()
	b.Select("go")
	m, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := m.matched("main.go", false); !got.IsWhitelist() {
		t.Errorf("main.go: got %+v, want Whitelist", got)
	}
}
