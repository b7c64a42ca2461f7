package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/agentsync/internal/convert"
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/resolver"
	"github.com/aidanlsb/agentsync/internal/ui"
)

var showRaw bool

type toolView struct {
	Tool     string `json:"tool"`
	Mode     string `json:"mode"`
	Globs    string `json:"globs,omitempty"`
	Targeted bool   `json:"targeted"`
}

var showCmd = &cobra.Command{
	Use:  "show <name>",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProject()
		if err != nil {
			return err
		}
		sets, err := loadRuleSets(pc.Root, pc.Roots())
		if err != nil {
			return handleError(ErrDirectoryListFail, err, "")
		}
		set, rule, err := findRule(sets, args[0])
		if err != nil {
			return handleError(errorCode(err), err, "Run 'agentsync list' to see available rules")
		}
		name := set.displayName(rule.Name)

		fm := rule.Document.Frontmatter
		canonical := convert.InferCanonical(fm)
		var views []toolView
		for _, t := range model.SyncTools() {
			a := resolver.ActivationFor(t, fm)
			views = append(views, toolView{Tool: t.String(), Mode: a.Mode.String(), Globs: a.Globs, Targeted: fm.TargetsTool(t)})
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"name":        name,
				"file":        displayRel(pc.Root, rule.Path),
				"mode":        canonical.Mode.String(),
				"description": fm.Description,
				"tools":       views,
				"content":     rule.Document.Content,
			}, nil)
			return nil
		}

		fmt.Println(ui.Header(name) + " " + ui.Hint(displayRel(pc.Root, rule.Path)))
		if fm.Description != "" {
			fmt.Println(fm.Description)
		}
		fmt.Println()
		tbl := ui.NewTable(3)
		tbl.AddRow(ui.Bold.Render("agentsync"), canonical.String(), "")
		for i, t := range model.SyncTools() {
			v := views[i]
			mode := v.Mode
			if v.Globs != "" {
				mode = fmt.Sprintf("%s(%s)", v.Mode, v.Globs)
			}
			note := ""
			if !v.Targeted {
				note = ui.Hint("not targeted")
			}
			tbl.AddRow(t.DisplayName(), mode, note)
		}
		fmt.Print(tbl.String())
		fmt.Println()

		if showRaw || !ui.IsTTY() {
			fmt.Print(rule.Document.Content)
			return nil
		}
		rendered, err := ui.RenderMarkdown(rule.Document.Content, ui.TermWidth()-ui.MarkdownRenderMargin)
		if err != nil {
			fmt.Print(rule.Document.Content)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the body without markdown rendering")
	rootCmd.AddCommand(showCmd)
}
