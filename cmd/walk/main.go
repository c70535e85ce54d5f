// Command walk is a thin demonstration of the walker package, mirroring
// original_source/ignore/examples/walk.rs: it prints every path a walk
// visits, optionally using the parallel walker.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dl/ignorewalk/internal/walker"
)

var (
	parallel    bool
	threads     int
	maxDepth    int
	followLinks bool
	noHidden    bool
	typeSelect  []string
)

var dirStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

var rootCmd = &cobra.Command{
	Use:   "walk [path]",
	Short: "walk a directory tree honoring gitignore-style rules",
	Args:  cobra.ExactArgs(1),
	RunE:  runWalk,
}

func init() {
	rootCmd.Flags().BoolVar(&parallel, "parallel", false, "use the parallel walker")
	rootCmd.Flags().IntVar(&threads, "threads", 0, "worker count for --parallel (0 = default of 2)")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", -1, "maximum descent depth (-1 = unlimited)")
	rootCmd.Flags().BoolVar(&followLinks, "follow", false, "follow symlinked directories")
	rootCmd.Flags().BoolVar(&noHidden, "hidden", false, "show hidden files (dotfiles)")
	rootCmd.Flags().StringSliceVar(&typeSelect, "type", nil, "restrict to a file type (repeatable)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runWalk(cmd *cobra.Command, args []string) error {
	path := args[0]

	builder := walker.NewWalkerBuilder(path).
		MaxDepth(maxDepth).
		FollowLinks(followLinks).
		Hidden(!noHidden)

	if len(typeSelect) > 0 {
		tb := walker.NewTypesBuilder().AddDefaults()
		for _, t := range typeSelect {
			tb.Select(t)
		}
		types, err := tb.Build()
		if err != nil {
			return fmt.Errorf("building file type matcher: %w", err)
		}
		builder.Types(types)
	}

	if parallel {
		builder.Threads(threads)
		pw, err := builder.BuildParallel()
		if err != nil {
			return err
		}
		return pw.Run(func() walker.Visitor {
			return walker.VisitorFunc(printEntry)
		})
	}

	sw, err := builder.Build()
	if err != nil {
		return err
	}
	return sw.Walk(printEntry)
}

func printEntry(entry walker.DirEntry) walker.WalkAction {
	if entry.Event == walker.DirExit {
		return walker.Continue
	}
	if entry.Err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(entry.Err.Error()))
		return walker.Continue
	}
	if entry.IsDir {
		fmt.Println(dirStyle.Render(entry.Path))
	} else {
		fmt.Println(entry.Path)
	}
	return walker.Continue
}
