package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stratum/pkg/buildinfo"
	"github.com/matzehuels/stratum/pkg/cache"
	"github.com/matzehuels/stratum/pkg/output"
	"github.com/matzehuels/stratum/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completions.
	appName = "stratum"

	// envLogLevel overrides the default log level when --verbose is not set.
	envLogLevel = "STRATUM_LOG_LEVEL"

	// formatTable is the terminal-only solve format rendered with lipgloss.
	formatTable = "table"
)

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Stratum computes z-index values from layering constraints",
		Long: `Stratum assigns integer z-index values to named UI layers.

Declare which layers sit above which in a stackfile (TOML, YAML or JSON),
pin third-party layers to fixed indices, and stratum picks the smallest
indices that satisfy every constraint.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// LevelFromEnv returns the level named by STRATUM_LOG_LEVEL, or def when the
// variable is unset or invalid.
func LevelFromEnv(def log.Level) log.Level {
	s := os.Getenv(envLogLevel)
	if s == "" {
		return def
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return def
	}
	return level
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// newCachedRunner is newRunner with rendered SVGs cached on disk. A cache
// directory that cannot be created disables caching.
func (c *CLI) newCachedRunner(noCache bool) *pipeline.Runner {
	runner := c.newRunner()
	if noCache {
		return runner
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("render cache disabled", "err", err)
		return runner
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("render cache disabled", "dir", dir, "err", err)
		return runner
	}
	runner.Cache = fc
	return runner
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/stratum/).
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

// outputFormat picks the solve output format. An explicit flag wins, then
// the extension of the output file. Terminals get a table, pipes get text.
func outputFormat(flag, path string, tty bool) string {
	if flag != "" {
		return flag
	}
	if path != "" {
		switch ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext {
		case output.FormatJSON, output.FormatTOML, output.FormatCSS, output.FormatSCSS:
			return ext
		case output.FormatYAML, "yml":
			return output.FormatYAML
		}
		return output.FormatText
	}
	if tty {
		return formatTable
	}
	return output.FormatText
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
