package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lockscope/lockscope/internal/server"
	"github.com/lockscope/lockscope/pkg/cache"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	root    string
	noCache bool
}

// newServeCmd creates the serve command, which exposes the analysis
// pipeline over HTTP until interrupted.
func newServeCmd() *cobra.Command {
	opts := serveOpts{root: "."}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the analysis over HTTP",
		Long: `Serve starts an HTTP server with two endpoints: GET /healthz and
POST /v1/analyze?file=<lockfile>. Lockfile paths resolve against --root and
results are memoized by content digest.

Example:
  lockscope serve --addr 127.0.0.1:8787 --root .`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (defaults to the config file value)")
	cmd.Flags().StringVar(&opts.root, "root", opts.root, "directory lockfile paths resolve against")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result memoization")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts.root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.addr == "" {
		opts.addr = cfg.Addr
	}

	var store *cache.Cache
	if !opts.noCache {
		store, err = cache.New(cfg.CacheDir, cfg.cacheTTL())
		if err != nil {
			logger.Warnf("Result cache disabled: %v", err)
			store = nil
		} else {
			store = store.Namespace("serve:")
		}
	}

	srv := server.New(server.Config{
		Addr:         opts.addr,
		Root:         opts.root,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, logger, store)

	if err := srv.Start(ctx); err != nil {
		return err
	}
	printInfo("Serving on http://%s (ctrl+c to stop)", srv.Addr())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
