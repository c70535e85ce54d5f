package walker

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-level logger that SetLogger replaces. No walker
// code writes to it: matcher verdicts are not logged, and non-fatal
// per-directory errors reach the caller as DirEntry.Err.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "ignorewalk",
})

// SetLogger replaces the package logger, e.g. to raise the level to debug
// or redirect output.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}
