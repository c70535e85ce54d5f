package walker

import (
	"path/filepath"
	"testing"
)

func rootSrc() sources {
	return sources{ignore: true, gitIgnore: true, gitExclude: true}
}

// Invariant 9 (spec.md §8): within one node, a .ignore Ignore verdict
// overrides a .gitignore Whitelist.
func TestIgnoreNode_IgnoreFileBeatsGitignoreWithinOneNode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gitignore"), "!keep.txt\n")
	writeFile(t, filepath.Join(dir, ".ignore"), "keep.txt\n")

	node, err := newRootNode(dir, nil, nil, false, nil, rootSrc(), false)
	if err != nil {
		t.Fatalf("newRootNode: %v", err)
	}

	if !node.shouldSkip(filepath.Join(dir, "keep.txt"), false) {
		t.Error("expected .ignore's Ignore to beat .gitignore's Whitelist")
	}
}

// Invariant 9, second half: a nearer-ancestor Ignore overrides a
// further-ancestor Whitelist.
func TestIgnoreNode_NearerAncestorOverridesFurther(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "child")
	mkTree(t, root, []string{"child"}, nil)

	writeFile(t, filepath.Join(root, ".gitignore"), "!target.txt\n")
	writeFile(t, filepath.Join(child, ".gitignore"), "target.txt\n")

	rootNode, err := newRootNode(root, nil, nil, false, nil, rootSrc(), false)
	if err != nil {
		t.Fatal(err)
	}
	childNode, err := rootNode.addChild(child, rootSrc())
	if err != nil {
		t.Fatal(err)
	}

	if !childNode.shouldSkip(filepath.Join(child, "target.txt"), false) {
		t.Error("expected nearer ancestor's Ignore to override further ancestor's Whitelist")
	}
}

func TestIgnoreNode_OverrideShortCircuits(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gitignore"), "*.txt\n")

	ob := NewOverrideBuilder().Add("!*.txt")
	override, err := ob.Build()
	if err != nil {
		t.Fatal(err)
	}

	node, err := newRootNode(dir, override, nil, false, nil, rootSrc(), false)
	if err != nil {
		t.Fatal(err)
	}

	if node.shouldSkip(filepath.Join(dir, "note.txt"), false) {
		t.Error("override's whitelist should short-circuit the gitignore Ignore")
	}
}

func TestIgnoreNode_HiddenFilterUnlessWhitelisted(t *testing.T) {
	dir := t.TempDir()

	node, err := newRootNode(dir, nil, nil, true, nil, sources{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !node.shouldSkip(filepath.Join(dir, ".env"), false) {
		t.Error("hidden file should be skipped when hidden suppression is on")
	}

	ob := NewOverrideBuilder().Add("!.env")
	override, err := ob.Build()
	if err != nil {
		t.Fatal(err)
	}
	node2, err := newRootNode(dir, override, nil, true, nil, sources{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if node2.shouldSkip(filepath.Join(dir, ".env"), false) {
		t.Error("an explicit whitelist should survive past the hidden filter")
	}
}

func TestIgnoreNode_FileTypeIgnoredForDirectories(t *testing.T) {
	dir := t.TempDir()
	tb := NewTypesBuilder()
	tb.Add("rust", "*.rs")
	tb.Negate("rust")
	types, err := tb.Build()
	if err != nil {
		t.Fatal(err)
	}

	node, err := newRootNode(dir, nil, types, false, nil, sources{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if node.shouldSkip(filepath.Join(dir, "src"), true) {
		t.Error("file-type matcher must never skip a directory")
	}
	if !node.shouldSkip(filepath.Join(dir, "main.rs"), false) {
		t.Error("file-type negate should skip a matching file")
	}
}
