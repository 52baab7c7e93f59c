package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
		Long: `Manage the on-disk response cache.

Cached responses never expire: match details are immutable, and for feeds
the --refresh flag refetches on demand. Clear the cache to reclaim disk
space or to drop stale feed pages wholesale.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached responses",
		Long: `Delete cached responses, optionally for a single endpoint family.

Examples:
  opendota cache clear
  opendota cache clear --family publicMatches`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(family)
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "only clear this endpoint family (e.g. matches, heroes)")

	return cmd
}

func (c *CLI) runCacheClear(family string) error {
	dir, err := c.effectiveCacheDir()
	if err != nil {
		return fmt.Errorf("resolve cache dir: %w", err)
	}
	if family != "" {
		dir = filepath.Join(dir, family)
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	count := 0
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if info.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		if err := os.Remove(path); err == nil {
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Drop family directories that are now empty
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || path == dir {
			return nil
		}
		if info.IsDir() {
			os.Remove(path)
		}
		return nil
	})

	printSuccess("Cleared %d cached responses", count)
	printDetail("Directory: %s", dir)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.effectiveCacheDir()
			if err != nil {
				return fmt.Errorf("resolve cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
