package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/silhouette/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render result cache",
	}

	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cachePurgeCommand())

	return cmd
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cache directory, entry count, and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			entries, size, err := cacheStats(dir)
			if err != nil {
				return err
			}
			printInfo("Cache directory: %s", dir)
			printDetail("%d entries, %d bytes", entries, size)
			return nil
		},
	}
}

// cachePurgeCommand creates the "cache purge" subcommand.
func (c *CLI) cachePurgeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove all cached render results",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			entries, _, err := cacheStats(dir)
			if err != nil {
				return err
			}

			store, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			if err := store.(*cache.FileCache).Purge(); err != nil {
				return err
			}

			printSuccess("Purged %d cached entries", entries)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cacheStats walks the cache directory and reports the number of entry
// files and their total size. A missing directory counts as empty.
func cacheStats(dir string) (entries int, size int64, err error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, 0, nil
	}
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if !info.IsDir() {
			entries++
			size += info.Size()
		}
		return nil
	})
	return entries, size, err
}
