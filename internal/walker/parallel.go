package walker

import (
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
)

// ParallelWalker performs the same traversal as SerialWalker with an
// N-worker pool sharing one lock-free work queue, per spec.md §4.4. Visit
// order across workers is unspecified (spec.md's non-goals explicitly
// exempt directory iteration order from any cross-thread guarantee); each
// worker still reads one directory's entries in lexical order before
// handing its subdirectories back to the shared queue.
type ParallelWalker struct {
	cfg config
}

// Visitor is built fresh for each worker goroutine by VisitorBuilder,
// mirroring the original crate's per-thread Visitor: WalkFunc is not
// required to be goroutine-safe across workers so long as each one only
// calls its own Visitor's Visit method.
type Visitor interface {
	Visit(DirEntry) WalkAction
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(DirEntry) WalkAction

func (f VisitorFunc) Visit(e DirEntry) WalkAction { return f(e) }

// VisitorBuilder constructs one Visitor per worker goroutine. Run calls it
// once in each worker, so each worker can hold independent state (e.g. its
// own output buffer) that need not be shared or locked.
type VisitorBuilder func() Visitor

// Run starts the worker pool and blocks until the walk completes or a
// worker returns Quit. build is called once per worker, from that
// worker's own goroutine.
func (w *ParallelWalker) Run(build VisitorBuilder) error {
	q := newWorkQueue()
	var numWaiting int32
	var quit atomic.Bool
	threads := w.cfg.threads
	if threads < 1 {
		threads = 1
	}

	var seedErr error
	var seedErrOnce sync.Once

	for _, root := range w.cfg.paths {
		if root == "-" {
			q.push(work{entry: NewStdinEntry()})
			continue
		}
		node, err := newRootNode(root, w.cfg.override, w.cfg.types, w.cfg.hidden, w.cfg.global, w.cfg.src, w.cfg.parents)
		if node == nil {
			seedErrOnce.Do(func() { seedErr = err })
			continue
		}
		entry := statDirEntry(root, 0)
		if entry.Err == nil {
			entry.Err = err
		}
		isDir := entry.IsDir || (entry.IsLink && w.cfg.followLinks && isDirThroughLink(root))
		if isDir {
			entry.IsDir = true
			entry.Event = DirEnter
		} else {
			entry.Event = File
		}
		q.push(work{entry: entry, node: node})
	}
	if seedErr != nil {
		return seedErr
	}

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			visitor := build()
			worker{
				cfg:        w.cfg,
				q:          q,
				numWaiting: &numWaiting,
				quit:       &quit,
				threads:    int32(threads),
				visitor:    visitor,
			}.run()
		}()
	}
	wg.Wait()
	return nil
}

// worker implements the get_work termination protocol from
// original_source/ignore/src/walk.rs, adapted from message-passing to
// shared memory: a worker that finds the queue empty increments
// numWaiting; the worker that observes every worker simultaneously idle
// knows the queue is genuinely exhausted (a worker only ever pushes new
// work while processing an item, never while idle) and broadcasts quit
// to the whole pool via the shared flag, rather than enqueuing one Quit
// sentinel per worker the way the original does.
type worker struct {
	cfg        config
	q          *workQueue
	numWaiting *int32
	quit       *atomic.Bool
	threads    int32
	visitor    Visitor
}

func (w worker) run() {
	for {
		if w.quit.Load() {
			return
		}
		item, ok := w.q.tryPop()
		if !ok {
			if w.waitForWork() {
				return
			}
			continue
		}
		if w.process(item) {
			w.quit.Store(true)
			return
		}
	}
}

// waitForWork registers this worker as idle and reports whether the
// whole pool is now idle (meaning the walk is done and every worker
// should exit). It un-registers itself before returning so a future
// empty tryPop can register again. The worker that brings numWaiting to
// threads stores quit unconditionally, which every other worker — idle
// now or later — observes via the shared flag, so the pool always
// unwinds in full instead of stalling one worker short.
func (w worker) waitForWork() bool {
	waiting := atomic.AddInt32(w.numWaiting, 1)
	defer atomic.AddInt32(w.numWaiting, -1)
	if waiting == w.threads {
		w.quit.Store(true)
	}
	return w.quit.Load()
}

// process handles one queued entry and returns true if the visitor asked
// to Quit.
func (w worker) process(item work) bool {
	entry := item.entry
	if entry.IsStdin {
		return w.visitor.Visit(entry) == Quit
	}

	if entry.Event != DirEnter {
		return w.visitor.Visit(entry) == Quit
	}

	action := w.visitor.Visit(entry)
	if action == Quit {
		return true
	}
	if action == SkipDir {
		// Matches SerialWalker: the DirEnter already ran, nothing else is
		// emitted for this subtree, but the matching DirExit still fires.
		exit := entry
		exit.Event = DirExit
		exit.Err = nil
		return w.visitor.Visit(exit) == Quit
	}

	if w.cfg.maxDepth >= 0 && entry.Depth >= w.cfg.maxDepth {
		// Matches SerialWalker: past max depth, the directory's contents
		// are never read at all, not merely not recursed into.
		exit := entry
		exit.Event = DirExit
		exit.Err = nil
		return w.visitor.Visit(exit) == Quit
	}

	names, err := readDirRaw(entry.Path)
	if err != nil {
		errEntry := DirEntry{Path: entry.Path, Depth: entry.Depth, Event: File, IsDir: true,
			Err: &IOError{Path: entry.Path, Depth: entry.Depth, Err: err}}
		w.visitor.Visit(errEntry)
		exit := entry
		exit.Event = DirExit
		exit.Err = nil
		return w.visitor.Visit(exit) == Quit
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

		if item.node.shouldSkip(childPath, isDir) {
			continue
		}

		if !isDir || (isLink && !w.cfg.followLinks) {
			child := DirEntry{Path: childPath, Depth: entry.Depth + 1, Event: File, IsDir: isDir && isLink, IsLink: isLink}
			if w.visitor.Visit(child) == Quit {
				return true
			}
			continue
		}

		childNode, addErr := item.node.addChild(childPath, w.cfg.src)
		childEntry := DirEntry{Path: childPath, Depth: entry.Depth + 1, Event: DirEnter, IsDir: true, IsLink: isLink, Err: addErr}
		w.q.push(work{entry: childEntry, node: childNode})
	}

	exit := entry
	exit.Event = DirExit
	exit.Err = nil
	return w.visitor.Visit(exit) == Quit
}
