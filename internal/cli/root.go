// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/agentsync/internal/config"
	"github.com/aidanlsb/agentsync/internal/ui"
)

var (
	// Global flags
	rootFlag   string
	configPath string
	verbose    bool

	// Resolved values
	resolvedRoot string
	cfg          *config.Config
	logger       = zap.NewNop()
)

// errSilent makes the process exit non-zero after the command has already
// reported the failure itself.
var errSilent = errors.New("")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "agentsync",
	Short: "Keep AI coding assistant rules in sync",
	Long: `agentsync keeps one set of rules under .agentsync/rules and projects it
into the rule formats of Cursor, Windsurf and GitHub Copilot.

Each rule has an activation mode (always on, manual, intelligent or glob)
that is translated to the closest equivalent in every tool.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, fmt.Errorf("failed to load config: %w", err), "Fix or remove the file passed with --config")
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		logger, err = newLogger(cfg.Log.Level, verbose)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Use one of debug, info, warn, error for [log] level")
		}

		root := rootFlag
		if root == "" {
			if root, err = os.Getwd(); err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}
		if resolvedRoot, err = filepath.Abs(root); err != nil {
			return fmt.Errorf("failed to resolve project root: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the CLI.
func Execute() error {
	syncRegistryMetadata(rootCmd)
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errSilent) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Project root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to user config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every file considered")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getRoot returns the resolved project root.
func getRoot() string {
	return resolvedRoot
}

func loadGlobalConfig() (*config.Config, error) {
	var loaded *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loaded, err = config.LoadFrom(configPath)
	} else {
		loaded, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		loaded = &config.Config{}
	}
	return loaded, nil
}
