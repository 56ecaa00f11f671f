// Package cli implements the knomap command-line interface.
//
// This package provides commands for laying out concept graphs, running
// graph analysis queries (paths, similarity, clusters, scoring), managing
// stored graphs, serving the HTTP API, and managing the local result
// cache. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute node positions for a concept graph
//   - paths: Find shortest or all paths between two concepts
//   - traverse: Walk the graph breadth- or depth-first from a start
//   - search: Free-text search over titles, explanations, and keywords
//   - similar: Find concepts textually similar to a target
//   - clusters: Identify connected clusters of concepts
//   - score: Rank every concept against a root concept
//   - graphs: Manage graphs stored in MongoDB
//   - serve: Run the HTTP API server
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/knomap/knomap/pkg/buildinfo"
	"github.com/knomap/knomap/pkg/cache"
	"github.com/knomap/knomap/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "knomap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the config
// loaded from disk (falling back to defaults when no file exists).
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: LoadConfig(),
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
		Short:        "Knomap analyzes and lays out concept graphs",
		Long:         `Knomap is a CLI tool for analyzing concept graphs: computing canvas layouts, finding paths and clusters, scoring concepts by relevance, and serving the engine over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Attach the logger to the command context so anything running off
	// cmd.Context() picks up the configured level.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.pathsCommand())
	root.AddCommand(c.traverseCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.similarCommand())
	root.AddCommand(c.clustersCommand())
	root.AddCommand(c.scoreCommand())
	root.AddCommand(c.graphsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The cache backend
// comes from the config unless --no-cache forces the null cache.
func (c *CLI) newRunner(cmd *cobra.Command, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(cmd, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, loggerFromContext(cmd.Context())), nil
}

func (c *CLI) newCache(cmd *cobra.Command, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case CacheBackendNone:
		return cache.NewNullCache(), nil
	case CacheBackendRedis:
		return cache.NewRedisCache(cmd.Context(),
			c.Config.Cache.RedisAddr, c.Config.Cache.RedisPassword, c.Config.Cache.RedisDB)
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/knomap/).
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
