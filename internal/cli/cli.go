// Package cli implements the netlayout command-line interface.
//
// This package provides commands for computing topology layouts, rendering
// them as diagrams, counting link crossings, and managing stored topologies
// and the local result cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute device positions for a topology file
//   - render: Render a topology to SVG, PNG, or DOT
//   - crossings: Count link crossings at the stored positions
//   - topo: Save, list, export, and delete stored topologies
//   - preview: Compare layout algorithms interactively
//   - serve: Run the HTTP layout API
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/jmichalek/netlayout/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jmichalek/netlayout/pkg/buildinfo"
	"github.com/jmichalek/netlayout/pkg/cache"
	"github.com/jmichalek/netlayout/pkg/config"
	"github.com/jmichalek/netlayout/pkg/pipeline"
	"github.com/jmichalek/netlayout/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "netlayout"

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
	Config config.Config
}

// New creates a new CLI instance with a default logger and default config.
// The config file is loaded later, in the root command's PersistentPreRunE,
// so that the --config flag can point somewhere else.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "netlayout",
		Short:        "Netlayout arranges network topology diagrams automatically",
		Long:         `Netlayout is a CLI tool for computing 2-D layouts of network topology diagrams. It supports force-directed, hierarchical, radial, and grid placement strategies and renders the result as SVG, PNG, or Graphviz DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			ctx := withLogger(cmd.Context(), c.Logger)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/netlayout/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.crossingsCommand())
	root.AddCommand(c.topoCommand())
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
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache builds the cache backend selected by the config. A missing cache
// directory degrades to a null cache instead of failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == config.CacheNone {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == config.CacheRedis {
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore builds the topology store backend selected by the config.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store.Backend == config.StoreMongo {
		return store.NewMongoStore(ctx, c.Config.Store.MongoURI, c.Config.Store.Database)
	}
	return store.NewMemoryStore(), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory, honoring the config override and the
// XDG standard (~/.cache/netlayout/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the default cache directory using XDG standard (~/.cache/netlayout/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions seeds pipeline options from the loaded config. Flag values
// registered against the returned struct override these defaults.
func (c *CLI) pipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		Algorithm:  c.Config.Layout.Algorithm,
		Iterations: c.Config.Layout.Iterations,
		Width:      c.Config.Layout.Width,
		Height:     c.Config.Layout.Height,
		Seed:       c.Config.Layout.Seed,
	}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	return strings.Split(s, ",")
}

// parseSelected parses a comma-separated node ID list into a slice.
func parseSelected(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
