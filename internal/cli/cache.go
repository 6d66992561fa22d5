package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/socnet/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached layouts, analyses and figures",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry from the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			backend := cacheBackend(cfg.Cache)

			if backend == cache.BackendFile {
				dir, err := c.fileCacheDir(cfg.Cache)
				if err != nil {
					return err
				}
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					printInfo("Cache is empty")
					return nil
				}
			}

			store, err := c.openCache(cmd.Context(), cfg.Cache, false)
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("%s cache cannot be cleared", backend)
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear %s cache: %w", backend, err)
			}

			printSuccess("Cleared %s cache", backend)
			if fc, ok := store.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory, or the backend URL for remote caches",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			switch backend := cacheBackend(cfg.Cache); backend {
			case cache.BackendFile:
				dir, err := c.fileCacheDir(cfg.Cache)
				if err != nil {
					return err
				}
				fmt.Println(dir)
			case cache.BackendRedis, cache.BackendMongo:
				fmt.Printf("%s %s\n", backend, cfg.Cache.URL)
			default:
				fmt.Println(backend)
			}
			return nil
		},
	}
}

func cacheBackend(cfg cache.Config) string {
	if cfg.Backend == "" {
		return cache.BackendFile
	}
	return cfg.Backend
}

func (c *CLI) fileCacheDir(cfg cache.Config) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return dir, nil
}
