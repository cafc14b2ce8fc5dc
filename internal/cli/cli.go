// Package cli implements the jsonscope command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/buildinfo"
	"github.com/matzehuels/jsonscope/pkg/statestore"
	"github.com/matzehuels/jsonscope/pkg/theme"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "jsonscope"

	// themeFile is the theme file name inside the config directory.
	themeFile = "theme.toml"
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
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "jsonscope",
		Short:        "Jsonscope explores JSON documents as collapsible trees",
		Long:         `Jsonscope is a CLI tool for exploring JSON and YAML documents as annotated trees with stable node paths, collapsible containers, and saveable views.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Attach the logger to the command context so subcommands can retrieve
	// it with loggerFromContext.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.getCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.stateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store Factory
// =============================================================================

// newStateStore opens the file-backed state store in the config directory.
func newStateStore() (statestore.Store, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return statestore.NewFileStore(filepath.Join(dir, "states"))
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/jsonscope/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Theme Helpers
// =============================================================================

// loadPalette resolves the palette: an explicit --theme path wins, otherwise
// the config directory theme file is used if present, otherwise the default.
func loadPalette(explicit string) (theme.Palette, error) {
	if explicit != "" {
		return theme.Load(explicit)
	}
	dir, err := configDir()
	if err != nil {
		return theme.Default(), nil
	}
	return theme.LoadOrDefault(filepath.Join(dir, themeFile))
}
