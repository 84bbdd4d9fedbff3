package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lockscope/lockscope/pkg/workspace"
)

// newEnginesCmd creates the engines command, which checks a concrete
// Node.js version against every workspace member's engines.node range.
func newEnginesCmd() *cobra.Command {
	var node string

	cmd := &cobra.Command{
		Use:   "engines [root]",
		Short: "Check engines.node compatibility",
		Long: `Engines compares a Node.js version against the engines.node range declared
by each workspace member. Members without a declaration are skipped.

Examples:
  lockscope engines --node 20.11.0
  lockscope engines ../monorepo --node 18.19.0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runEngines(c.Context(), root, node)
		},
	}

	cmd.Flags().StringVar(&node, "node", "", "Node.js version to check (defaults to the config file value)")

	return cmd
}

func runEngines(ctx context.Context, root, node string) error {
	logger := loggerFromContext(ctx)

	if node == "" {
		cfg, err := loadConfig(root)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		node = cfg.Node
	}
	if node == "" {
		return fmt.Errorf("no Node.js version given (use --node or set node in %s)", configFileName)
	}

	members, kind, err := workspace.Discover(root)
	if err != nil {
		return err
	}
	logger.Debugf("Discovered %d members (%s)", len(members), kind)

	findings := workspace.CheckEngines(members, node)
	if len(findings) == 0 {
		printInfo("No engines.node declarations found")
		return nil
	}

	failed := 0
	for _, f := range findings {
		if f.Satisfied {
			printSuccess("%s: %s satisfies %s", f.Member, node, f.Constraint)
		} else {
			printError("%s: %s does not satisfy %s", f.Member, node, f.Constraint)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d members reject node %s", failed, len(findings), node)
	}
	return nil
}
