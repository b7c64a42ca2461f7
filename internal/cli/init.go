package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/agentsync/internal/atomicfile"
	"github.com/aidanlsb/agentsync/internal/config"
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/paths"
	"github.com/aidanlsb/agentsync/internal/rulesync"
	"github.com/aidanlsb/agentsync/internal/ui"
)

var initFrom string

type initResult struct {
	Root       string            `json:"root"`
	Config     string            `json:"config"`
	RulesDir   string            `json:"rules_dir"`
	Existing   map[string]int    `json:"existing,omitempty"`
	ImportedBy string            `json:"imported_from,omitempty"`
	Import     *rulesync.Outcome `json:"import,omitempty"`
}

var initCmd = &cobra.Command{
	Use:  "init",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := getRoot()
		configFile := config.ProjectPath(root)

		if _, err := os.Stat(configFile); err == nil {
			return handleErrorMsg(ErrAlreadyInitialized,
				fmt.Sprintf("agentsync is already initialized in %s", root),
				"Use 'agentsync sync' to sync rules")
		}

		var from model.Tool
		if initFrom != "" {
			t, err := model.ParseTool(initFrom)
			if err != nil {
				return handleError(ErrUnknownTool, err, "")
			}
			from = t
		}

		existing, err := existingRules(root)
		if err != nil {
			return handleError(ErrDirectoryListFail, err, "")
		}

		rulesDir := filepath.Join(root, paths.Dir(model.ToolCanonical))
		if err := os.MkdirAll(rulesDir, atomicfile.DirPerm); err != nil {
			return handleError(ErrFileWriteError, fmt.Errorf("failed to create %s: %w", rulesDir, err), "")
		}
		if err := config.SaveProject(configFile, config.DefaultProject()); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if from == "" && len(existing) > 0 && !isJSONOutput() {
			fmt.Println(ui.Info("Found existing rules:"))
			var options []string
			for _, t := range model.SyncTools() {
				if n, ok := existing[t.String()]; ok {
					fmt.Printf("  %s %s\n", t.DisplayName(), ui.Hint(ui.Count(n, "rule", "rules")))
					options = append(options, t.String())
				}
			}
			if choice, ok := promptForChoice("Import rules from which tool?", options); ok {
				from = model.Tool(choice)
			}
		}

		result := initResult{
			Root:     root,
			Config:   configFile,
			RulesDir: rulesDir,
			Existing: existing,
		}
		if from != "" {
			outcome, err := rulesync.FromTool(root, from, rulesync.Options{Verbose: verbose, Logger: logger})
			if err != nil {
				return handleError(errorCode(err), err, "")
			}
			result.ImportedBy = from.String()
			result.Import = outcome
		}

		if isJSONOutput() {
			outputSuccess(result, nil)
			return nil
		}

		fmt.Println(ui.Successf("Initialized agentsync in %s", ui.FilePath(root)))
		fmt.Printf("  %s  %s\n", ui.FilePath(paths.ConfigFileName), ui.Hint("project configuration"))
		fmt.Printf("  %s  %s\n", ui.FilePath(paths.Dir(model.ToolCanonical)+"/"), ui.Hint("canonical rules"))
		if result.Import != nil {
			fmt.Println()
			fmt.Printf("Imported from %s:\n", from.DisplayName())
			printOutcome(result.Import, false)
			if result.Import.HasErrors() {
				return errSilent
			}
		}
		fmt.Println()
		fmt.Println(ui.Hint("Next: 'agentsync add <name>' to create a rule, then 'agentsync sync'."))
		return nil
	},
}

// existingRules counts rule files per tool directory.
func existingRules(root string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, t := range model.SyncTools() {
		files, err := paths.Discover(root, t)
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			counts[t.String()] = len(files)
		}
	}
	return counts, nil
}

func init() {
	initCmd.Flags().StringVar(&initFrom, "from", "", "Import existing rules from a tool (cursor, windsurf, copilot)")
	rootCmd.AddCommand(initCmd)
}
