package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lockscope/lockscope/pkg/workspace"
)

// workspaceOpts holds the command-line flags for the workspace command.
type workspaceOpts struct {
	json   bool
	output string
}

// newWorkspaceCmd creates the workspace command: member discovery plus the
// range-mismatch, reference, and cycle checks.
func newWorkspaceCmd() *cobra.Command {
	opts := workspaceOpts{}

	cmd := &cobra.Command{
		Use:   "workspace [root]",
		Short: "Check monorepo references, mismatches, and cycles",
		Long: `Workspace discovers members from npm/yarn workspaces, pnpm-workspace.yaml,
or lerna.json, then checks that members agree on dependency ranges, that
workspace: references point at real members, and that no member cycles exist.

Examples:
  lockscope workspace
  lockscope workspace ../monorepo --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runWorkspace(c.Context(), &opts, root)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "emit findings as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// workspaceFindings is the JSON shape for --json output.
type workspaceFindings struct {
	Kind       workspace.Kind               `json:"kind"`
	Members    []*workspace.Member          `json:"members"`
	Mismatches []workspace.MismatchFinding  `json:"mismatches,omitempty"`
	References []workspace.ReferenceFinding `json:"references,omitempty"`
	Cycles     []workspace.CycleFinding     `json:"cycles,omitempty"`
}

func runWorkspace(ctx context.Context, opts *workspaceOpts, root string) error {
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	members, kind, err := workspace.Discover(root)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Discovered %d members (%s)", len(members), kind))

	findings := workspaceFindings{
		Kind:       kind,
		Members:    members,
		Mismatches: workspace.FindMismatches(members),
		References: workspace.CheckReferences(members),
		Cycles:     workspace.FindCycles(members),
	}

	if opts.json {
		out, err := openOutput(opts.output)
		if err != nil {
			return err
		}
		defer out.Close()
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(findings)
	}

	for _, m := range members {
		printDetail("%s@%s (%s)", m.Name, m.Version, m.Path)
	}
	fmt.Println()

	total := len(findings.Mismatches) + len(findings.References) + len(findings.Cycles)
	if total == 0 {
		printSuccess("Workspace is healthy")
		return nil
	}

	for _, m := range findings.Mismatches {
		printWarning("%s declared at %d different ranges", m.Dependency, len(m.Ranges))
		for _, r := range m.Ranges {
			printDetail("%s used by %v", r.Range, r.Members)
		}
	}
	for _, r := range findings.References {
		printError("%s: %s", r.Member, r.Detail)
	}
	for _, c := range findings.Cycles {
		printError("circular dependency: %s ↔ %s", c.MemberA, c.MemberB)
	}
	printInfo("%d findings", total)
	return nil
}
