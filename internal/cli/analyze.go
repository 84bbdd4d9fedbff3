package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lockscope/lockscope/pkg/cache"
	"github.com/lockscope/lockscope/pkg/depgraph"
	"github.com/lockscope/lockscope/pkg/lockfile"
	"github.com/lockscope/lockscope/pkg/render"
	"github.com/lockscope/lockscope/pkg/report"
	"github.com/lockscope/lockscope/pkg/workspace"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	json      bool   // emit the report as JSON instead of the summary view
	output    string // output file path (stdout if empty)
	refresh   bool   // bypass the result cache
	noCache   bool   // disable the result cache entirely
	workspace bool   // include workspace findings
	node      string // Node.js version for the engines check
}

// newAnalyzeCmd creates the analyze command, the full diagnostic pipeline:
// parse the lockfile, detect duplicates, and (optionally) run the workspace
// and engines checks.
func newAnalyzeCmd() *cobra.Command {
	opts := analyzeOpts{}

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Run the full diagnostic pipeline for a lockfile",
		Long: `Analyze parses a lockfile into a dependency graph and reports duplicate
packages. With --workspace it also discovers monorepo members and checks
declared ranges, workspace references, and member cycles.

Examples:
  lockscope analyze                        # lockfile in the current directory
  lockscope analyze apps/web               # lockfile in a subdirectory
  lockscope analyze yarn.lock --json       # machine-readable report
  lockscope analyze --workspace --node 20.11.0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			return runAnalyze(c.Context(), &opts, arg)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "emit the report as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVarP(&opts.workspace, "workspace", "w", false, "include workspace findings")
	cmd.Flags().StringVar(&opts.node, "node", "", "Node.js version for the engines check (implies --workspace)")

	return cmd
}

func runAnalyze(ctx context.Context, opts *analyzeOpts, arg string) error {
	logger := loggerFromContext(ctx)

	path, err := locateLockfile(arg)
	if err != nil {
		return err
	}
	root := filepath.Dir(path)

	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.node == "" {
		opts.node = cfg.Node
	}
	if opts.node != "" {
		opts.workspace = true
	}

	parser, err := lockfile.Detect(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var store *cache.Cache
	if !opts.noCache {
		store, err = cache.New(cfg.CacheDir, cfg.cacheTTL())
		if err != nil {
			logger.Warnf("Result cache disabled: %v", err)
		} else {
			store = store.Namespace("analyze:")
		}
	}

	digest := sha256.Sum256(data)
	key := fmt.Sprintf("%s:%s:%v:%s", path, hex.EncodeToString(digest[:]), opts.workspace, opts.node)

	var rep *report.Report
	cached := false
	if store != nil && !opts.refresh {
		var stored report.Report
		if ok, _ := store.Get(key, &stored); ok {
			rep = &stored
			cached = true
		}
	}

	if rep == nil {
		logger.Infof("Parsing %s (%s)", path, parser.Type())
		prog := newProgress(logger)
		occurrences, err := parser.Parse(data)
		if err != nil {
			return err
		}
		g := depgraph.Build(occurrences)
		rep = report.New(path, parser.Type(), g)

		if opts.workspace {
			members, kind, err := workspace.Discover(root)
			switch {
			case errors.Is(err, workspace.ErrNoWorkspace):
				logger.Warnf("No workspace configuration under %s", root)
			case err != nil:
				return err
			default:
				logger.Debugf("Discovered %d members (%s)", len(members), kind)
				rep.WithWorkspace(members)
				if opts.node != "" {
					rep.WithEngines(members, opts.node)
				}
			}
		}
		prog.done(fmt.Sprintf("Found %d findings", rep.FindingCount()))

		if store != nil {
			if err := store.Set(key, rep); err != nil {
				logger.Warnf("Cache write failed: %v", err)
			}
		}
	}

	if opts.json {
		out, err := openOutput(opts.output)
		if err != nil {
			return err
		}
		defer out.Close()
		body, err := rep.JSON()
		if err != nil {
			return err
		}
		if _, err := out.Write(append(body, '\n')); err != nil {
			return err
		}
		if opts.output != "" {
			logger.Infof("Wrote report to %s", opts.output)
		}
		return nil
	}

	printReport(rep, cached)
	return nil
}

// printReport renders the human-readable summary view.
func printReport(rep *report.Report, cached bool) {
	printKeyValue("Source", rep.Source)
	printKeyValue("Type", rep.LockfileType)
	if cached {
		printDetail("(cached result)")
	}
	printStats(rep.Summary.UniquePackages, rep.Summary.TotalOccurrences, rep.Summary.Duplicates)
	fmt.Println()

	if len(rep.Duplicates) == 0 {
		printSuccess("No duplicate packages")
	}
	for _, d := range rep.Duplicates {
		versions := render.SortVersions(versionKeys(d.Versions))
		printWarning("%s resolves to %d versions: %s", d.Name, len(versions), strings.Join(versions, ", "))
	}

	for _, m := range rep.Mismatches {
		ranges := make([]string, 0, len(m.Ranges))
		for _, r := range m.Ranges {
			ranges = append(ranges, fmt.Sprintf("%s (%s)", r.Range, strings.Join(r.Members, ", ")))
		}
		printWarning("%s declared at different ranges: %s", m.Dependency, strings.Join(ranges, "; "))
	}
	for _, r := range rep.References {
		printError("%s: %s", r.Member, r.Detail)
	}
	for _, c := range rep.Cycles {
		printError("circular dependency: %s ↔ %s", c.MemberA, c.MemberB)
	}
	for _, e := range rep.Engines {
		if e.Satisfied {
			printDetail("%s: engines.node %s satisfied", e.Member, e.Constraint)
		} else {
			printError("%s: engines.node %s not satisfied", e.Member, e.Constraint)
		}
	}
}

func versionKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for v := range m {
		out = append(out, v)
	}
	return out
}
