package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/resolver"
	"github.com/aidanlsb/agentsync/internal/ui"
)

var whichTool string

var whichCmd = &cobra.Command{
	Use:  "which <file>",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProject()
		if err != nil {
			return err
		}

		var tool model.Tool
		if whichTool != "" {
			if tool, err = model.ParseTool(whichTool); err != nil {
				return handleError(ErrUnknownTool, err, "")
			}
		}

		abs, err := filepath.Abs(args[0])
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		file, err := relativeTo(pc.Root, abs)
		if err != nil {
			return handleError(ErrFileOutsideRoot, fmt.Errorf("%s is outside the project root %s", args[0], pc.Root), "")
		}

		sets, err := loadRuleSets(pc.Root, pc.Roots())
		if err != nil {
			return handleError(ErrDirectoryListFail, err, "")
		}
		matches := []resolver.Match{}
		for _, set := range sets {
			// Globs are relative to the base directory the rule lives in.
			rel, err := relativeTo(set.Root, abs)
			if err != nil {
				continue
			}
			for _, m := range set.Resolver.Which(rel, tool) {
				m.Rule = set.displayName(m.Rule)
				matches = append(matches, m)
			}
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]any{
				"file":    file,
				"matches": matches,
			}, invalidRuleWarnings(sets), &Meta{Count: len(matches)})
			return nil
		}

		var applies, onRequest []resolver.Match
		for _, m := range matches {
			if m.OnRequest {
				onRequest = append(onRequest, m)
			} else {
				applies = append(applies, m)
			}
		}

		if len(applies) == 0 {
			fmt.Printf("No rules apply to %s\n", ui.FilePath(file))
		} else {
			fmt.Printf("Rules applying to %s:\n", ui.FilePath(file))
			tbl := ui.NewTable(3)
			for _, m := range applies {
				tbl.AddRow("  "+ui.RuleName(m.Rule), m.Mode, ui.Hint(m.Pattern))
			}
			fmt.Print(tbl.String())
		}
		if len(onRequest) > 0 {
			fmt.Println()
			fmt.Println("Available on request:")
			tbl := ui.NewTable(2)
			for _, m := range onRequest {
				tbl.AddRow("  "+ui.RuleName(m.Rule), ui.Hint(m.Mode))
			}
			fmt.Print(tbl.String())
		}
		for _, w := range invalidRuleWarnings(sets) {
			fmt.Println(ui.Warning(w.Message))
		}
		return nil
	},
}

// relativeTo returns abs as a slash path relative to root, or an error when
// abs is not inside root.
func relativeTo(root, abs string) (string, error) {
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", abs, root)
	}
	return filepath.ToSlash(rel), nil
}

func init() {
	whichCmd.Flags().StringVar(&whichTool, "tool", "", "Evaluate rules as this tool sees them")
	rootCmd.AddCommand(whichCmd)
}
