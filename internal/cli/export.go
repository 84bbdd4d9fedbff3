package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lockscope/lockscope/pkg/render"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	format string // dot, svg, or png
	output string // output file path (stdout if empty, dot only)
}

// newExportCmd creates the export command, which emits the dependency graph
// in Graphviz formats.
func newExportCmd() *cobra.Command {
	opts := exportOpts{format: "dot"}

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Emit the graph as DOT, SVG, or PNG",
		Long: `Export converts the dependency graph to Graphviz DOT, optionally
rasterized to SVG or PNG. Duplicated packages are highlighted and the
node_modules nesting shows up as edges.

Examples:
  lockscope export > deps.dot
  lockscope export --format svg -o deps.svg
  lockscope export apps/web --format png -o deps.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			return runExport(c.Context(), &opts, arg)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg, or png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runExport(ctx context.Context, opts *exportOpts, arg string) error {
	logger := loggerFromContext(ctx)

	g, _, _, err := loadGraph(ctx, arg)
	if err != nil {
		return err
	}
	dot := render.ToDOT(g)

	var body []byte
	switch opts.format {
	case "dot":
		body = []byte(dot)
	case "svg":
		body, err = render.SVG(ctx, dot)
	case "png":
		body, err = render.PNG(ctx, dot)
	default:
		return fmt.Errorf("unknown format %q (want dot, svg, or png)", opts.format)
	}
	if err != nil {
		return err
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(body); err != nil {
		return err
	}
	if opts.output != "" {
		logger.Infof("Wrote %s to %s", opts.format, opts.output)
		printFile(opts.output)
	}
	return nil
}
