package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lockscope/lockscope/pkg/cache"
)

// newCacheCmd creates the cache management command.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the analysis result cache",
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())

	return cmd
}

// newCacheClearCmd creates the "cache clear" subcommand.
func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached analysis results",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cache.New("", 0)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			count, err := store.Clear()
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", store.Dir())
			return nil
		},
	}
}

// newCachePathCmd creates the "cache path" subcommand.
func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cache.New("", 0)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			fmt.Println(store.Dir())
			return nil
		},
	}
}
