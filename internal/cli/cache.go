package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tue-alga/Gridmap-sub002/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local checkpoint cache",
	}

	cmd.AddCommand(c.cachePruneCommand("prune", "Remove expired and unreadable checkpoints", false))
	cmd.AddCommand(c.cachePruneCommand("clear", "Remove all cached checkpoints", true))
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cachePruneCommand creates "cache prune" and "cache clear".
func (c *CLI) cachePruneCommand(use, short string, all bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cache.DefaultDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			n, err := fc.Prune(cmd.Context(), all)
			if err != nil {
				return fmt.Errorf("prune cache: %w", err)
			}
			if n == 0 {
				printInfo("Nothing to remove")
			} else {
				printSuccess("Removed %d cached entries", n)
			}
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cache.DefaultDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
