package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/liberate/pkg/buildinfo"
	"github.com/matzehuels/liberate/pkg/cache"
	"github.com/matzehuels/liberate/pkg/config"
	"github.com/matzehuels/liberate/pkg/liberate"
	"github.com/matzehuels/liberate/pkg/observability"
	"github.com/matzehuels/liberate/pkg/proguard"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "liberate"

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

	// Shrinker replaces the ProGuard subprocess when set.
	Shrinker proguard.Shrinker

	// Out receives command output; nil means stdout.
	Out io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

func (c *CLI) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Liberate the classes a project needs from large library jars",
		Long: `Liberate runs ProGuard over a project's compiled classes and selected
dependency jars (the Scala runtime by default), keeping only the classes
reachable from the configured entry points, and unpacks them next to the
project's own classes for packaging.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetLiberateHooks(&logHooks{logger: c.Logger})
			observability.SetCacheHooks(&logHooks{logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Liberator Factory
// =============================================================================

// newLiberator creates a liberator for cfg. Caching is on when the
// configuration enables it, unless noCache is set.
func (c *CLI) newLiberator(cfg *config.Config, logger *log.Logger, noCache bool) (*liberate.Liberator, error) {
	shrinker := c.Shrinker
	if shrinker == nil {
		shrinker = &proguard.ExecShrinker{
			Java:   cfg.ProGuard.Java,
			Jar:    cfg.ProGuard.Jar,
			Logger: logger,
		}
	}

	store, err := newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	if fc, ok := store.(*cache.FileCache); ok {
		logger.Debug("staging cache", "dir", fc.Dir())
	}
	l := liberate.NewLiberator(shrinker, store, logger)
	l.CacheTTL = cfg.CacheTTL(cache.DefaultTTL)
	return l, nil
}

func newCache(cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache || !cfg.CacheEnabled() {
		return cache.NewNullCache(), nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/liberate/).
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
