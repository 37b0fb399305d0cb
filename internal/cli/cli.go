// Package cli implements the silhouette command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/silhouette/pkg/buildinfo"
	"github.com/matzehuels/silhouette/pkg/cache"
	"github.com/matzehuels/silhouette/pkg/config"
	"github.com/matzehuels/silhouette/pkg/errors"
	"github.com/matzehuels/silhouette/pkg/pipeline"
)

// requireFlags returns a coded argument error when any of the named
// string flags is empty, so missing required flags exit with status 2.
func requireFlags(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		if v, _ := cmd.Flags().GetString(name); v == "" {
			return errors.New(errors.ErrCodeInvalidFlag, "required flag --%s not set\n\n%s", name, cmd.UsageString())
		}
	}
	return nil
}

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "silhouette"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		cfg: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Silhouette reshapes source code into ASCII art",
		Long: `Silhouette reformats a program so that its characters cluster where an
ASCII-art image has foreground pixels and its whitespace clusters where the
image is background. The output is the same program: it re-tokenizes to
exactly the original token stream.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(errors.ErrCodeInvalidFlag, err, "invalid arguments")
	})
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/silhouette/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.tokensCommand())
	root.AddCommand(c.artCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache selects the cache backend from config. An unreachable Redis
// server or an undeterminable cache directory falls back to disabled
// caching; an error creating the file cache directory is returned.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.cfg.Cache.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	if c.cfg.Cache.Backend == config.BackendRedis {
		store, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.cfg.Cache.RedisAddr,
			Password: c.cfg.Cache.RedisPassword,
			DB:       c.cfg.Cache.RedisDB,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", c.cfg.Cache.RedisAddr, "error", err)
			return cache.NewNullCache(), nil
		}
		return store, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/silhouette/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
