package walker

import "testing"

func TestMatch_Tags(t *testing.T) {
	n := NoneMatch[string]()
	if !n.IsNone() || n.IsWhitelist() || n.IsIgnore() || n.ShouldSkip() {
		t.Errorf("NoneMatch: %+v", n)
	}

	w := WhitelistMatch("x")
	if w.IsNone() || !w.IsWhitelist() || w.IsIgnore() || w.ShouldSkip() {
		t.Errorf("WhitelistMatch: %+v", w)
	}
	if w.Value() != "x" {
		t.Errorf("Value() = %q, want %q", w.Value(), "x")
	}

	i := IgnoreMatch(42)
	if i.IsNone() || i.IsWhitelist() || !i.IsIgnore() || !i.ShouldSkip() {
		t.Errorf("IgnoreMatch: %+v", i)
	}
	if i.Value() != 42 {
		t.Errorf("Value() = %d, want 42", i.Value())
	}
}
