package walker

import (
	"path/filepath"
	"sort"
)

// WalkAction is returned by a WalkFunc to steer traversal, mirroring the
// original crate's WalkState: Continue descends normally, SkipDir prunes
// the directory just entered (or, from a non-directory entry, has no
// effect), and Quit stops the walk immediately.
type WalkAction int

const (
	Continue WalkAction = iota
	SkipDir
	Quit
)

// WalkFunc is called once per DirEntry a walk visits, in depth-first,
// lexical order within each directory. Entries for which DirEntry.Err is
// set are still reported — the callback decides whether an unreadable
// directory should end the walk.
type WalkFunc func(DirEntry) WalkAction

// SerialWalker performs a single-threaded depth-first traversal of one or
// more root paths, applying the full ignore-rule cascade at each entry
// before invoking the caller's WalkFunc. It corresponds to spec.md §4.3 and
// to the original crate's WalkEventIter, reconstructed here as an explicit
// recursive descent rather than a hand-rolled event queue — Go's call stack
// already gives the DirEnter/File/DirExit ordering the Rust iterator had to
// recode from depth deltas.
type SerialWalker struct {
	cfg config
}

// Walk runs the traversal, calling fn for every entry. The error returned
// is non-nil only if a root's initial IgnoreNode could not be built at all.
// An error loading the root's own (or, with Parents, an ancestor's) ignore
// files is reported as the root entry's DirEntry.Err, and per-directory
// read errors are reported to fn as DirEntry.Err, instead of aborting the
// whole walk.
func (w *SerialWalker) Walk(fn WalkFunc) error {
	for _, root := range w.cfg.paths {
		if root == "-" {
			if fn(NewStdinEntry()) == Quit {
				return nil
			}
			continue
		}

		node, err := newRootNode(root, w.cfg.override, w.cfg.types, w.cfg.hidden, w.cfg.global, w.cfg.src, w.cfg.parents)
		if node == nil {
			return err
		}

		entry := statDirEntry(root, 0)
		if entry.Err == nil {
			entry.Err = err
		}
		// A root that is a symlink to a file is always read as a file
		// regardless of FollowLinks (spec.md §4.3/§9); only a symlinked
		// *directory* root needs FollowLinks to be traversed.
		rootIsDir := entry.IsDir || (entry.IsLink && w.cfg.followLinks && isDirThroughLink(root))

		if !rootIsDir {
			entry.Event = File
			if fn(entry) == Quit {
				return nil
			}
			continue
		}

		entry.IsDir = true
		if w.visitDir(entry, node, fn) == Quit {
			return nil
		}
	}
	return nil
}

// visitDir handles one directory: the DirEnter callback, its children in
// lexical order, and the DirExit callback. It returns Quit if the caller
// asked to stop anywhere inside.
func (w *SerialWalker) visitDir(entry DirEntry, node *IgnoreNode, fn WalkFunc) WalkAction {
	entry.Event = DirEnter
	action := fn(entry)
	if action == Quit {
		return Quit
	}
	if action == SkipDir {
		// The DirEnter callback already ran; nothing else is emitted for
		// this subtree, but the matching DirExit still fires so every
		// DirEnter has exactly one DirExit regardless of how the subtree
		// was cut short.
		exit := entry
		exit.Event = DirExit
		exit.Err = nil
		if fn(exit) == Quit {
			return Quit
		}
		return Continue
	}

	if w.cfg.maxDepth < 0 || entry.Depth < w.cfg.maxDepth {
		if quit := w.visitChildren(entry, node, fn); quit {
			return Quit
		}
	}

	exit := entry
	exit.Event = DirExit
	exit.Err = nil
	if fn(exit) == Quit {
		return Quit
	}
	return Continue
}

// visitChildren reads entry's directory and recurses into or reports each
// child. It returns true if the caller asked to Quit.
func (w *SerialWalker) visitChildren(entry DirEntry, node *IgnoreNode, fn WalkFunc) bool {
	names, err := readDirRaw(entry.Path)
	if err != nil {
		errEntry := DirEntry{Path: entry.Path, Depth: entry.Depth, Event: File, IsDir: true,
			Err: &IOError{Path: entry.Path, Depth: entry.Depth, Err: err}}
		return fn(errEntry) == Quit
	}
	sort.Slice(names, func(i, j int) bool { return names[i].Name < names[j].Name })

	for _, d := range names {
		childPath := filepath.Join(entry.Path, d.Name)
		isDir := d.Type == DT_DIR
		isLink := d.Type == DT_LNK

		if isLink && w.cfg.followLinks {
			if target, ok := resolveLinkIsDir(childPath); ok {
				isDir = target
			}
		}

		if node.shouldSkip(childPath, isDir) {
			continue
		}

		if !isDir {
			child := DirEntry{Path: childPath, Depth: entry.Depth + 1, Event: File, IsLink: isLink}
			if fn(child) == Quit {
				return true
			}
			continue
		}
		if isLink && !w.cfg.followLinks {
			// An unfollowed symlink-to-directory is reported as a plain
			// (non-descended) entry, same as ripgrep's default.
			child := DirEntry{Path: childPath, Depth: entry.Depth + 1, Event: File, IsDir: true, IsLink: true}
			if fn(child) == Quit {
				return true
			}
			continue
		}

		childNode, addErr := node.addChild(childPath, w.cfg.src)
		childEntry := DirEntry{Path: childPath, Depth: entry.Depth + 1, IsDir: true, IsLink: isLink, Err: addErr}
		if w.visitDir(childEntry, childNode, fn) == Quit {
			return true
		}
	}
	return false
}

func isDirThroughLink(path string) bool {
	target, ok := resolveLinkIsDir(path)
	return ok && target
}
