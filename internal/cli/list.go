package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/agentsync/internal/convert"
	"github.com/aidanlsb/agentsync/internal/parser"
	"github.com/aidanlsb/agentsync/internal/ui"
)

type ruleSummary struct {
	Name        string   `json:"name"`
	BaseDir     string   `json:"base_dir,omitempty"`
	File        string   `json:"file"`
	Mode        string   `json:"mode"`
	Globs       string   `json:"globs,omitempty"`
	Targets     []string `json:"targets"`
	Description string   `json:"description,omitempty"`
	Title       string   `json:"title,omitempty"`
}

var listCmd = &cobra.Command{
	Use:  "list",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProject()
		if err != nil {
			return err
		}
		sets, err := loadRuleSets(pc.Root, pc.Roots())
		if err != nil {
			return handleError(ErrDirectoryListFail, err, "")
		}

		rules := []ruleSummary{}
		for _, set := range sets {
			for _, rule := range set.Resolver.Rules() {
				fm := rule.Document.Frontmatter
				a := convert.InferCanonical(fm)
				rules = append(rules, ruleSummary{
					Name:        set.displayName(rule.Name),
					BaseDir:     set.Label,
					File:        displayRel(pc.Root, rule.Path),
					Mode:        a.Mode.String(),
					Globs:       a.Globs,
					Targets:     fm.Targets,
					Description: fm.Description,
					Title:       parser.Title(rule.Document.Content),
				})
			}
		}
		warnings := invalidRuleWarnings(sets)

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]any{"rules": rules}, warnings, &Meta{Count: len(rules)})
			return nil
		}

		if len(rules) == 0 {
			fmt.Println(ui.Hint("No rules yet. Create one with 'agentsync add <name>'."))
		} else {
			tbl := ui.NewTable(4)
			for _, s := range rules {
				mode := s.Mode
				if s.Globs != "" {
					mode = fmt.Sprintf("%s(%s)", s.Mode, s.Globs)
				}
				tbl.AddRow(ui.RuleName(s.Name), mode, ui.Hint(targetsLabel(s.Targets)), s.Title)
			}
			fmt.Print(tbl.String())
		}
		for _, w := range warnings {
			fmt.Println(ui.Warning(w.Message))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
