package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/agentsync/internal/atomicfile"
	"github.com/aidanlsb/agentsync/internal/convert"
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/parser"
	"github.com/aidanlsb/agentsync/internal/paths"
	"github.com/aidanlsb/agentsync/internal/slugs"
	"github.com/aidanlsb/agentsync/internal/ui"
)

var (
	addDescription string
	addMode        string
	addGlobs       string
	addDir         string
)

var addCmd = &cobra.Command{
	Use:  "add <name>",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProject()
		if err != nil {
			return err
		}
		name := args[0]

		if err := paths.ValidateRuleName(name); err != nil {
			suggestion := ""
			if s := slugs.RuleSlug(name); s != "" && s != name && paths.ValidateRuleName(s) == nil {
				suggestion = fmt.Sprintf("Did you mean '%s'?", s)
			}
			return handleError(ErrRuleNameInvalid, err, suggestion)
		}

		activation, err := addActivation()
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		baseDir, err := pc.baseDirFor(addDir)
		if err != nil {
			return handleErrorWithDetails(ErrInvalidInput, err.Error(),
				"Choose a base directory with --dir", map[string]any{"base_dirs": pc.Project.BaseDirs})
		}

		target, err := paths.RulePath(baseDir, model.ToolCanonical, name)
		if err != nil {
			return handleError(errorCode(err), err, "")
		}
		if _, err := os.Stat(target); err == nil {
			return handleErrorMsg(ErrRuleExists,
				fmt.Sprintf("rule '%s' already exists at %s", name, target),
				"Edit the existing file or choose another name")
		}

		doc := model.Document[model.CanonicalRule]{
			Frontmatter: convert.NewRule(addDescription, activation),
			Content:     ruleTemplateBody(name),
		}
		if err := atomicfile.WriteString(target, doc.Serialize()); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		rel := displayRel(pc.Root, target)
		warnings := addWarnings(activation, addDescription)
		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]any{
				"rule": name,
				"file": rel,
				"mode": activation.Mode,
			}, warnings, nil)
			return nil
		}
		fmt.Println(ui.Successf("Created %s %s", ui.FilePath(rel), ui.Hint("("+activation.String()+")")))
		for _, w := range warnings {
			fmt.Println(ui.Warning(w.Message))
		}
		fmt.Println(ui.Hint("Edit the rule, then run 'agentsync sync'."))
		return nil
	},
}

// addActivation reads --mode and --globs. Globs alone imply glob mode; no
// flags give an intelligent rule.
func addActivation() (model.Activation, error) {
	globs := strings.TrimSpace(addGlobs)
	mode := model.ModeIntelligent
	if globs != "" {
		mode = model.ModeGlob
	}
	if addMode != "" {
		m, ok := model.ParseMode(addMode)
		if !ok {
			return model.Activation{}, fmt.Errorf("unknown mode %q (use always_on, manual, intelligent or glob)", addMode)
		}
		mode = m
	}

	switch mode {
	case model.ModeAlwaysOn:
		return model.AlwaysOn(), nil
	case model.ModeManual:
		return model.Manual(), nil
	case model.ModeGlob:
		if convert.IsUniversalGlob(globs) {
			return model.Activation{}, fmt.Errorf("glob mode needs --globs with at least one non-universal pattern")
		}
		return model.Glob(parser.NormalizeGlobs(globs)), nil
	default:
		return model.Intelligent(), nil
	}
}

// addWarnings flags activations some tools cannot represent as written.
// Cursor has no manual flag: a Cursor rule with a description and no globs
// is read as intelligent.
func addWarnings(a model.Activation, description string) []Warning {
	if a.Mode != model.ModeManual || strings.TrimSpace(description) == "" {
		return nil
	}
	return []Warning{{
		Code:    WarnLossyMode,
		Message: "Cursor reads a manual rule with a description as intelligent; drop --description to keep it manual in Cursor",
	}}
}

func ruleTemplateBody(name string) string {
	return "# " + slugs.TitleCase(name) + "\n\nDescribe how the assistant should work here.\n"
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Rule description (used by intelligent rules)")
	addCmd.Flags().StringVar(&addMode, "mode", "", "Activation mode: always_on, manual, intelligent, glob")
	addCmd.Flags().StringVar(&addGlobs, "globs", "", "Comma-separated file patterns (implies --mode glob)")
	addCmd.Flags().StringVar(&addDir, "dir", "", "Base directory from agentsync.json to add the rule to")
	rootCmd.AddCommand(addCmd)
}
