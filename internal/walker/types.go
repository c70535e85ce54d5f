package walker

import (
	"path/filepath"
	"sync"

	gi "github.com/sabhiram/go-gitignore"
)

// FileTypeDef is a single named file type: a name plus the ordered list of
// globs that recognize it. Definitions are immutable once built.
type FileTypeDef struct {
	name  string
	globs []string
}

// Name returns the file type's name.
func (d FileTypeDef) Name() string { return d.name }

// Globs returns the globs used to recognize this file type.
func (d FileTypeDef) Globs() []string { return d.globs }

// Glob describes which file type definition, and which glob within it,
// produced a FileTypeMatcher verdict. A zero Glob with Matched == false
// means the path was ignored for matching no selected type, not for
// matching a negated one.
type Glob struct {
	Matched bool
	Def     FileTypeDef
	Which   int // index into Def.Globs() of the glob that matched
	Negated bool
}

// selectionKind distinguishes an include from an exclude selection.
type selectionKind int

const (
	selectionSelect selectionKind = iota
	selectionNegate
)

type selection struct {
	kind selectionKind
	name string
	def  FileTypeDef
}

func (s selection) isNegated() bool { return s.kind == selectionNegate }

// compiledGlob is one glob compiled for matching, annotated with which
// selection and which glob-within-definition it came from. A single
// definition glob containing brace alternation (e.g. "*.{rs,foo}") expands
// into one compiledGlob per alternative at Build time; all of them share
// globIndex so Glob.Which still points back to the original definition
// glob regardless of which alternative actually matched.
type compiledGlob struct {
	pattern   string
	gi        *gi.GitIgnore
	selection int // index into FileTypeMatcher.selections
	globIndex int // index into the owning definition's Globs()
}

// FileTypeMatcher maps file basenames to a Match[Glob] verdict according to
// an ordered list of select/negate selections over named file type
// definitions. It is built once by TypesBuilder and shared by reference
// across goroutines.
type FileTypeMatcher struct {
	defs        []FileTypeDef
	selections  []selection
	hasSelected bool
	globs       []compiledGlob

	// matchScratch holds reusable []int index buffers, one per goroutine
	// that queries this matcher concurrently. Go has no stable
	// goroutine-local storage, so a sync.Pool stands in for the
	// thread-local scratch the spec calls for: each Get borrows a buffer
	// no other goroutine is using at that instant, and Put returns it for
	// reuse instead of letting it get collected.
	matchScratch sync.Pool
}

// newFileTypeMatcher initializes the scratch pool. The zero value of
// FileTypeMatcher is not usable directly because sync.Pool needs its New
// func set.
func newFileTypeMatcher(defs []FileTypeDef, selections []selection, hasSelected bool, globs []compiledGlob) *FileTypeMatcher {
	m := &FileTypeMatcher{
		defs:        defs,
		selections:  selections,
		hasSelected: hasSelected,
		globs:       globs,
	}
	m.matchScratch.New = func() any {
		return make([]int, 0, 8)
	}
	return m
}

// matched implements spec.md §4.1's precedence:
//  1. directories and an empty matcher never match.
//  2. a path with no basename is Ignore(unmatched) if anything is selected,
//     else None.
//  3. the highest-indexed matching glob wins (selections and their globs
//     are compiled in append order, so later negate/select calls shadow
//     earlier ones for the same name).
//  4. no match: Ignore(unmatched) if anything is selected, else None.
func (m *FileTypeMatcher) matched(path string, isDir bool) Match[Glob] {
	if isDir || len(m.globs) == 0 {
		return NoneMatch[Glob]()
	}
	name := filepath.Base(path)
	if name == "" || name == "." || name == string(filepath.Separator) {
		if m.hasSelected {
			return IgnoreMatch(Glob{})
		}
		return NoneMatch[Glob]()
	}

	matches := m.matchScratch.Get().([]int)[:0]
	for i, g := range m.globs {
		if g.gi.MatchesPath(name) {
			matches = append(matches, i)
		}
	}

	if len(matches) == 0 {
		m.matchScratch.Put(matches)
		if m.hasSelected {
			return IgnoreMatch(Glob{})
		}
		return NoneMatch[Glob]()
	}

	// The highest-indexed match wins: glob indices are assigned in
	// selection order, so later negate/select calls override earlier
	// ones for the same name.
	winner := matches[len(matches)-1]
	m.matchScratch.Put(matches)

	cg := m.globs[winner]
	sel := m.selections[cg.selection]
	glob := Glob{
		Matched: true,
		Def:     sel.def,
		Which:   cg.globIndex,
		Negated: sel.isNegated(),
	}
	if sel.isNegated() {
		return IgnoreMatch(glob)
	}
	return WhitelistMatch(glob)
}

// defaultTypes mirrors the ~80 default (name, globs) pairs the original
// ignore crate ships in types.rs. Globs are not unique: several definitions
// intentionally share globs (e.g. "cpp" and "objcpp" both claim "*.h").
var defaultTypes = []struct {
	name  string
	globs []string
}{
	{"agda", []string{"*.agda", "*.lagda"}},
	{"asciidoc", []string{"*.adoc", "*.asc", "*.asciidoc"}},
	{"asm", []string{"*.asm", "*.s", "*.S"}},
	{"awk", []string{"*.awk"}},
	{"c", []string{"*.c", "*.h", "*.H"}},
	{"cbor", []string{"*.cbor"}},
	{"clojure", []string{"*.clj", "*.cljc", "*.cljs", "*.cljx"}},
	{"cmake", []string{"*.cmake", "CMakeLists.txt"}},
	{"coffeescript", []string{"*.coffee"}},
	{"creole", []string{"*.creole"}},
	{"config", []string{"*.config"}},
	{"cpp", []string{"*.C", "*.cc", "*.cpp", "*.cxx", "*.h", "*.H", "*.hh", "*.hpp"}},
	{"cs", []string{"*.cs"}},
	{"csharp", []string{"*.cs"}},
	{"css", []string{"*.css"}},
	{"cython", []string{"*.pyx"}},
	{"dart", []string{"*.dart"}},
	{"d", []string{"*.d"}},
	{"elisp", []string{"*.el"}},
	{"erlang", []string{"*.erl", "*.hrl"}},
	{"fish", []string{"*.fish"}},
	{"fortran", []string{"*.f", "*.F", "*.f77", "*.F77", "*.pfo", "*.f90", "*.F90", "*.f95", "*.F95"}},
	{"fsharp", []string{"*.fs", "*.fsx", "*.fsi"}},
	{"go", []string{"*.go"}},
	{"groovy", []string{"*.groovy", "*.gradle"}},
	{"hbs", []string{"*.hbs"}},
	{"haskell", []string{"*.hs", "*.lhs"}},
	{"html", []string{"*.htm", "*.html"}},
	{"java", []string{"*.java"}},
	{"jinja", []string{"*.jinja", "*.jinja2"}},
	{"js", []string{"*.js", "*.jsx", "*.vue"}},
	{"json", []string{"*.json"}},
	{"jsonl", []string{"*.jsonl"}},
	{"lisp", []string{"*.el", "*.jl", "*.lisp", "*.lsp", "*.sc", "*.scm"}},
	{"lua", []string{"*.lua"}},
	{"m4", []string{"*.ac", "*.m4"}},
	{"make", []string{"gnumakefile", "Gnumakefile", "makefile", "Makefile", "*.mk", "*.mak"}},
	{"markdown", []string{"*.markdown", "*.md", "*.mdown", "*.mkdn"}},
	{"md", []string{"*.markdown", "*.md", "*.mdown", "*.mkdn"}},
	{"matlab", []string{"*.m"}},
	{"mk", []string{"mkfile"}},
	{"ml", []string{"*.ml"}},
	{"nim", []string{"*.nim"}},
	{"objc", []string{"*.h", "*.m"}},
	{"objcpp", []string{"*.h", "*.mm"}},
	{"ocaml", []string{"*.ml", "*.mli", "*.mll", "*.mly"}},
	{"org", []string{"*.org"}},
	{"perl", []string{"*.perl", "*.pl", "*.PL", "*.plh", "*.plx", "*.pm"}},
	{"pdf", []string{"*.pdf"}},
	{"php", []string{"*.php", "*.php3", "*.php4", "*.php5", "*.phtml"}},
	{"pod", []string{"*.pod"}},
	{"py", []string{"*.py"}},
	{"readme", []string{"README*", "*README"}},
	{"r", []string{"*.R", "*.r", "*.Rmd", "*.Rnw"}},
	{"rdoc", []string{"*.rdoc"}},
	{"rst", []string{"*.rst"}},
	{"ruby", []string{"*.rb"}},
	{"rust", []string{"*.rs"}},
	{"scala", []string{"*.scala"}},
	{"sh", []string{"*.bash", "*.csh", "*.ksh", "*.sh", "*.tcsh"}},
	{"spark", []string{"*.spark"}},
	{"sql", []string{"*.sql"}},
	{"sv", []string{"*.v", "*.vg", "*.sv", "*.svh", "*.h"}},
	{"swift", []string{"*.swift"}},
	{"taskpaper", []string{"*.taskpaper"}},
	{"tcl", []string{"*.tcl"}},
	{"tex", []string{"*.tex", "*.ltx", "*.cls", "*.sty", "*.bib"}},
	{"textile", []string{"*.textile"}},
	{"ts", []string{"*.ts", "*.tsx"}},
	{"txt", []string{"*.txt"}},
	{"toml", []string{"*.toml", "Cargo.lock"}},
	{"vala", []string{"*.vala"}},
	{"vb", []string{"*.vb"}},
	{"vimscript", []string{"*.vim"}},
	{"wiki", []string{"*.mediawiki", "*.wiki"}},
	{"xml", []string{"*.xml"}},
	{"yacc", []string{"*.y"}},
	{"yaml", []string{"*.yaml", "*.yml"}},
}
