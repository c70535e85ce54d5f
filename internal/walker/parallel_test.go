package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// buildForest creates nDirs subdirectories directly under root, each holding
// filesPerDir files — half named "skip_N", half named "keep_N" — plus a
// .gitignore ignoring "skip_*". It mirrors S6's tree shape at a scale small
// enough to run quickly while still exercising concurrent directory reads
// across many worker goroutines.
func buildForest(t *testing.T, nDirs, filesPerDir int) (root string, wantFiles, wantDirs int) {
	t.Helper()
	root = t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "skip_*\n")

	for i := 0; i < nDirs; i++ {
		d := filepath.Join(root, fmt.Sprintf("d%d", i))
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
		wantDirs++
		for j := 0; j < filesPerDir; j++ {
			name := fmt.Sprintf("keep_%d", j)
			if j%2 == 0 {
				name = fmt.Sprintf("skip_%d", j)
			}
			writeFile(t, filepath.Join(d, name), "")
			if name[:4] == "keep" {
				wantFiles++
			}
		}
	}
	return root, wantFiles, wantDirs
}

func runParallelCount(t *testing.T, root string, threads int) (files, dirs int) {
	t.Helper()
	b := NewWalkerBuilder(root).Threads(threads)
	pw, err := b.BuildParallel()
	if err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	err = pw.Run(func() Visitor {
		return VisitorFunc(func(e DirEntry) WalkAction {
			if e.Event == DirExit {
				return Continue
			}
			mu.Lock()
			defer mu.Unlock()
			if e.IsDir {
				if e.Path != root {
					dirs++
				}
			} else {
				files++
			}
			return Continue
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	return files, dirs
}

// S6: total emitted count equals files_not_matching_skip + directories,
// independent of thread count.
func TestParallelWalker_S6_CountIndependentOfThreads(t *testing.T) {
	root, wantFiles, wantDirs := buildForest(t, 25, 10)

	for _, threads := range []int{1, 2, 4, 16} {
		threads := threads
		t.Run(fmt.Sprintf("threads=%d", threads), func(t *testing.T) {
			files, dirs := runParallelCount(t, root, threads)
			if files != wantFiles {
				t.Errorf("files = %d, want %d", files, wantFiles)
			}
			if dirs != wantDirs {
				t.Errorf("dirs = %d, want %d", dirs, wantDirs)
			}
		})
	}
}

func TestParallelWalker_MatchesSerialWalker(t *testing.T) {
	root, _, _ := buildForest(t, 8, 6)

	serialGot := collectPaths(t, root, nil)

	b := NewWalkerBuilder(root).Threads(4)
	pw, err := b.BuildParallel()
	if err != nil {
		t.Fatal(err)
	}
	var mu sync.Mutex
	var parallelGot []string
	err = pw.Run(func() Visitor {
		return VisitorFunc(func(e DirEntry) WalkAction {
			if e.Event == DirExit || e.Path == root {
				return Continue
			}
			mu.Lock()
			parallelGot = append(parallelGot, mustRel(t, root, e.Path))
			mu.Unlock()
			return Continue
		})
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(serialGot) != len(parallelGot) {
		t.Fatalf("serial emitted %d entries, parallel emitted %d", len(serialGot), len(parallelGot))
	}
	set := make(map[string]bool, len(serialGot))
	for _, p := range serialGot {
		set[p] = true
	}
	for _, p := range parallelGot {
		if !set[p] {
			t.Errorf("parallel emitted %q, not present in serial output", p)
		}
	}
}
