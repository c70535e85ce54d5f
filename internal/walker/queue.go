package walker

import "sync/atomic"

// work is one unit handed to a ParallelWalker worker: a directory entry to
// classify, paired with the IgnoreNode built for that entry's own path,
// which the worker uses to filter the directory's children.
type work struct {
	entry DirEntry
	node  *IgnoreNode
}

// workNode is a node in the lock-free stack backing workQueue. No library
// in the retrieval pack implements a lock-free MPMC queue, so this is
// built directly on atomic.Pointer + CAS rather than reached for a channel
// (which would force FIFO ordering and a fixed buffer size neither spec.md
// nor the original Rust crossbeam deque requires) or a mutex-guarded slice
// (simple, but contended exactly where ParallelWalker's workers spend most
// of their time: the spec explicitly models work-stealing as lock-free).
type workNode struct {
	v    work
	next *workNode
}

// workQueue is a Treiber stack: push and pop both CAS the head pointer.
// LIFO order doesn't violate spec.md's "no preservation of directory
// iteration order across threads" non-goal, and is what the original's
// crossbeam deque also provides per-worker.
type workQueue struct {
	head atomic.Pointer[workNode]
}

func newWorkQueue() *workQueue {
	return &workQueue{}
}

func (q *workQueue) push(w work) {
	n := &workNode{v: w}
	for {
		old := q.head.Load()
		n.next = old
		if q.head.CompareAndSwap(old, n) {
			return
		}
	}
}

// tryPop returns (work, true) if an item was available, or (zero, false) if
// the queue was empty at the moment of the attempt. It never blocks;
// ParallelWalker's termination protocol relies on that to distinguish
// "nothing to do right now" from "nothing left, ever".
func (q *workQueue) tryPop() (work, bool) {
	for {
		old := q.head.Load()
		if old == nil {
			return work{}, false
		}
		if q.head.CompareAndSwap(old, old.next) {
			return old.v, true
		}
	}
}
