package walker

import (
	"os"
	"path/filepath"
)

// IgnoreNode is an immutable record of every matcher active at one
// directory: an optional override, the per-source ignore-file matchers
// enabled for this walk, a file-type matcher, and the hidden-file policy.
// Nodes form a parent chain from the directory back up to the walk root.
// Go's garbage collector reclaims a node once the last IgnoreStack or
// queued parallel Work item referencing it is gone — there is no need for
// the explicit atomic refcount the spec's source language would use,
// sharing a *IgnoreNode pointer already gives "refcounted, shareable,
// cheap to clone" for free.
type IgnoreNode struct {
	parent *IgnoreNode
	dir    string // this node's directory as the walker spells it; absolute for ancestor nodes from addParents
	root   string // the walk root this node descends from, as given to the builder

	override *Override
	explicit *ignoreSource // from WalkerBuilder.AddIgnore, lowest ignore-file precedence
	ignore   *ignoreSource // .ignore
	git      *ignoreSource // .gitignore
	exclude  *ignoreSource // .git/info/exclude
	global   *ignoreSource // global gitignore, shared across the whole walk

	types *FileTypeMatcher

	hidden bool
}

// sources configures which per-directory ignore-file kinds IgnoreNode
// should look for, mirroring WalkerBuilder's per-source toggles.
type sources struct {
	explicitLines []string // pre-loaded via WalkerBuilder.AddIgnore, compiled once
	ignore        bool
	gitIgnore     bool
	gitExclude    bool
	gitGlobal     bool
}

// newRootNode builds the root IgnoreNode for one walk root, before any
// directory has been entered: override/types/hidden/global come from the
// builder, explicit ignore files are pre-compiled once (they don't depend
// on directory). If withParents is set, ancestor directories above root
// (up to the filesystem root) are folded in first, per spec.md §9's note
// that the root directory inherits ancestor .gitignore files; root's own
// ignore files are always loaded last, giving them the highest precedence
// in the chain.
func newRootNode(root string, override *Override, types *FileTypeMatcher, hidden bool, global *ignoreSource, src sources, withParents bool) (*IgnoreNode, error) {
	base := &IgnoreNode{
		dir:      root,
		root:     root,
		override: override,
		types:    types,
		hidden:   hidden,
		global:   global,
	}
	if len(src.explicitLines) > 0 {
		explicit, err := newIgnoreSourceFromLines(src.explicitLines)
		if err != nil {
			return nil, err
		}
		base.explicit = explicit
	}

	var firstErr error
	cur := base
	if withParents {
		var err error
		cur, err = base.addParents(root, src)
		if err != nil {
			firstErr = err
		}
	}

	final, err := cur.addChild(root, src)
	if err != nil && firstErr == nil {
		firstErr = err
	}
	return final, firstErr
}

// loadDirSources parses whichever of .ignore/.gitignore/.git/info/exclude
// are enabled in src and present in dir. A missing file is not an error;
// an unreadable one is collected into the returned error but the sources
// that did load are still returned and used.
func loadDirSources(dir string, src sources) (ignore, git, exclude *ignoreSource, err error) {
	var firstErr error
	record := func(e error) {
		if e != nil && firstErr == nil {
			firstErr = e
		}
	}

	if src.ignore {
		ignore, err = newIgnoreSourceFromFile(dir, ".ignore")
		record(err)
	}
	if src.gitIgnore {
		git, err = newIgnoreSourceFromFile(dir, ".gitignore")
		record(err)
	}
	if src.gitExclude {
		exclude, err = newIgnoreSourceFromFile(filepath.Join(dir, ".git", "info"), "exclude")
		record(err)
	}
	return ignore, git, exclude, firstErr
}

// addChild parses the ignore files found in dir (a child of n's directory)
// and returns a new node extending the chain. Partial failures (e.g. one
// bad glob in .gitignore) are collected into the returned error but the
// child node is still valid and the walk must continue with it.
func (n *IgnoreNode) addChild(dir string, src sources) (*IgnoreNode, error) {
	child := &IgnoreNode{
		parent:   n,
		dir:      dir,
		root:     n.root,
		override: n.override,
		types:    n.types,
		hidden:   n.hidden,
		global:   n.global,
		explicit: n.explicit,
	}
	ignore, git, exclude, err := loadDirSources(dir, src)
	child.ignore, child.git, child.exclude = ignore, git, exclude
	return child, err
}

// addParents walks upward from dir to the filesystem root, absorbing any
// ancestor directory's ignore files into the chain before the walk proper
// begins. dir is canonicalized against the working directory first, as
// spec.md §4.2/§9 requires. The returned node replaces the stack root for
// this traversal; n itself (with its override/types/global settings) seeds
// every ancestor node built along the way.
func (n *IgnoreNode) addParents(dir string, src sources) (*IgnoreNode, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return n, &IOError{Path: dir, Err: err}
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		// Not all ancestors need exist for EvalSymlinks to succeed on
		// every platform; fall back to the non-symlink-resolved form
		// rather than failing the whole walk over it.
		abs, _ = filepath.Abs(dir)
	}

	var ancestors []string
	for p := filepath.Dir(abs); p != filepath.Dir(p); p = filepath.Dir(p) {
		ancestors = append(ancestors, p)
	}
	// ancestors is deepest-first; walk it top-down (root of the filesystem
	// toward dir) so closer ancestors end up with higher precedence, per
	// addChild's child-overrides-parent ordering.
	cur := n
	var firstErr error
	for i := len(ancestors) - 1; i >= 0; i-- {
		if !hasAnyIgnoreFile(ancestors[i], src) {
			continue
		}
		next, err := cur.addChild(ancestors[i], src)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		cur = next
	}
	return cur, firstErr
}

func hasAnyIgnoreFile(dir string, src sources) bool {
	check := func(name string) bool {
		_, err := os.Stat(filepath.Join(dir, name))
		return err == nil
	}
	if src.ignore && check(".ignore") {
		return true
	}
	if src.gitIgnore && check(".gitignore") {
		return true
	}
	if src.gitExclude && check(filepath.Join(".git", "info", "exclude")) {
		return true
	}
	return false
}

// relToRoot returns path relative to the node's walk root, forward-slashed,
// for matchers (override, explicit, global) that aren't anchored to a
// specific directory.
func (n *IgnoreNode) relToRoot(path string) string {
	rel, err := filepath.Rel(n.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// matched implements the precedence cascade of spec.md §4.2:
//  1. override — a verdict here short-circuits everything else.
//  2. the ignore-file cascade, inner matchers first, nearer ancestors
//     before further ones, with a fixed per-node precedence of
//     .ignore > .gitignore > .git/info/exclude > explicit > global.
//     The first Ignore or Whitelist ends the cascade, so lower-precedence
//     sources are not consulted; a Whitelist may still be overridden by
//     the file-type matcher.
//  3. the file-type matcher, for non-directories only.
//  4. the hidden-file filter, unless an earlier stage whitelisted the
//     path.
func (n *IgnoreNode) matched(path string, isDir bool) Match[string] {
	if n.override != nil {
		if m := n.override.matched(n.relToRoot(path), isDir); !m.IsNone() {
			return m
		}
	}

	whitelisted := false
cascade:
	for cur := n; cur != nil; cur = cur.parent {
		if m := cur.ignore.matched(path, isDir); m.IsIgnore() {
			return m
		} else if m.IsWhitelist() {
			whitelisted = true
			break cascade
		}
		if m := cur.git.matched(path, isDir); m.IsIgnore() {
			return m
		} else if m.IsWhitelist() {
			whitelisted = true
			break cascade
		}
		if m := cur.exclude.matched(path, isDir); m.IsIgnore() {
			return m
		} else if m.IsWhitelist() {
			whitelisted = true
			break cascade
		}
	}
	if n.explicit != nil && !whitelisted {
		if m := n.explicit.matched(n.relToRoot(path), isDir); m.IsIgnore() {
			return m
		} else if m.IsWhitelist() {
			whitelisted = true
		}
	}
	if n.global != nil && !whitelisted {
		if m := n.global.matched(n.relToRoot(path), isDir); m.IsIgnore() {
			return m
		} else if m.IsWhitelist() {
			whitelisted = true
		}
	}

	if n.types != nil && !isDir {
		if m := n.types.matched(path, isDir); m.IsIgnore() {
			return m
		} else if m.IsWhitelist() {
			whitelisted = true
		}
	}

	if n.hidden && !whitelisted && isHiddenBasename(path) {
		return IgnoreMatch(path)
	}

	return NoneMatch[string]()
}

// shouldSkip reduces matched's verdict to the walker's boolean decision.
func (n *IgnoreNode) shouldSkip(path string, isDir bool) bool {
	return n.matched(path, isDir).ShouldSkip()
}

func isHiddenBasename(path string) bool {
	base := filepath.Base(path)
	return len(base) > 0 && base[0] == '.'
}
