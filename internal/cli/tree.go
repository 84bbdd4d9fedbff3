package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lockscope/lockscope/pkg/render"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	focus          string // restrict output to one package
	duplicatesOnly bool   // hide single-version packages
	maxDepth       int    // hide locations deeper than this (-1 = unlimited)
	limit          int    // locations printed per version
	interactive    bool   // browse the tree in a TUI
}

// newTreeCmd creates the tree command, a hierarchical view of the parsed
// dependency graph with duplicate highlighting.
func newTreeCmd() *cobra.Command {
	opts := treeOpts{maxDepth: -1}

	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Render the dependency graph as a tree",
		Long: `Tree prints every package with its resolved versions and install
locations. Duplicated packages are marked.

Examples:
  lockscope tree
  lockscope tree --package react
  lockscope tree --duplicates-only --max-depth 2
  lockscope tree -i                              # interactive browser`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			return runTree(c.Context(), &opts, arg)
		},
	}

	cmd.Flags().StringVarP(&opts.focus, "package", "p", "", "show only this package")
	cmd.Flags().BoolVar(&opts.duplicatesOnly, "duplicates-only", false, "show only duplicated packages")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", opts.maxDepth, "hide locations deeper than this (-1 for unlimited)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "locations printed per version (0 for default)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the tree interactively")

	return cmd
}

func runTree(ctx context.Context, opts *treeOpts, arg string) error {
	g, _, path, err := loadGraph(ctx, arg)
	if err != nil {
		return err
	}

	limit := opts.limit
	if limit == 0 {
		cfg, err := loadConfig(filepath.Dir(path))
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		limit = cfg.LocationCap
	}

	out := render.Tree(g, render.Options{
		Focus:          opts.focus,
		DuplicatesOnly: opts.duplicatesOnly,
		MaxDepth:       opts.maxDepth,
		LocationCap:    limit,
	})
	if out == "" {
		printInfo("Nothing to show")
		return nil
	}

	if opts.interactive {
		return runTreeBrowser(path, out)
	}
	fmt.Print(out)
	s := g.Summarize()
	printStats(s.UniquePackages, s.TotalOccurrences, s.Duplicates)
	return nil
}
