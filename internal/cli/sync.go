package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/rulesync"
	"github.com/aidanlsb/agentsync/internal/ui"
)

var (
	syncFrom   string
	syncDryRun bool
)

var syncCmd = &cobra.Command{
	Use:  "sync",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProject()
		if err != nil {
			return err
		}

		var from model.Tool
		if syncFrom != "" {
			if from, err = model.ParseTool(syncFrom); err != nil {
				return handleError(ErrUnknownTool, err, "")
			}
		}

		opts := rulesync.Options{DryRun: syncDryRun, Verbose: verbose, Logger: logger}
		roots := pc.Roots()
		if from != "" && !syncDryRun && shouldPrompt() {
			ok, err := confirmImport(roots, from, opts)
			if err != nil {
				return handleError(errorCode(err), err, "")
			}
			if !ok {
				fmt.Println(ui.Hint("Cancelled; no rules were written."))
				return nil
			}
		}
		total := &rulesync.Outcome{}
		for _, root := range roots {
			logger.Debug("syncing root", zap.String("root", root), zap.Bool("dry_run", syncDryRun))

			var out *rulesync.Outcome
			if from != "" {
				out, err = rulesync.FromTool(root, from, opts)
			} else {
				out, err = rulesync.ToTools(root, pc.Tools, opts)
			}
			if err != nil {
				return handleError(errorCode(err), fmt.Errorf("%s: %w", root, err), "")
			}
			if len(roots) > 1 {
				out = prefixed(out, rootLabel(pc.Root, root))
			}
			total.Merge(out)
		}

		if isJSONOutput() {
			if total.HasErrors() {
				outputJSON(Response{
					OK:   false,
					Data: total,
					Error: &ErrorInfo{
						Code:    ErrSyncFailed,
						Message: fmt.Sprintf("%d rules failed to sync", len(total.Errors)),
					},
					Meta: &Meta{Count: total.Total(), DryRun: syncDryRun},
				})
				return errSilent
			}
			outputSuccess(total, &Meta{Count: total.Total(), DryRun: syncDryRun})
			return nil
		}

		if syncDryRun {
			fmt.Println(ui.Warning("Dry run: no files were written"))
		}
		printOutcome(total, syncDryRun)
		if total.HasErrors() {
			return errSilent
		}
		return nil
	},
}

// confirmImport previews an import and asks before it overwrites existing
// canonical rules. Imports that only add rules go ahead without asking.
func confirmImport(roots []string, from model.Tool, opts rulesync.Options) (bool, error) {
	opts.DryRun = true
	var overwrites int
	for _, root := range roots {
		preview, err := rulesync.FromTool(root, from, opts)
		if err != nil {
			return false, err
		}
		overwrites += len(preview.Updated)
	}
	if overwrites == 0 {
		return true, nil
	}
	return promptForConfirm(fmt.Sprintf("Overwrite %d canonical %s with the %s versions?",
		overwrites, pluralRules(overwrites), from.DisplayName())), nil
}

func pluralRules(n int) string {
	if n == 1 {
		return "rule"
	}
	return "rules"
}

// printOutcome prints one line per changed or failed item and a summary.
func printOutcome(o *rulesync.Outcome, dryRun bool) {
	added, updated := "added", "updated"
	if dryRun {
		added, updated = "would add", "would update"
	}
	for _, name := range o.Added {
		fmt.Println(ui.Successf("%s %s", added, ui.RuleName(name)))
	}
	for _, name := range o.Updated {
		fmt.Println(ui.Successf("%s %s", updated, ui.RuleName(name)))
	}
	if verbose {
		for _, name := range o.Skipped {
			fmt.Println(ui.Hint("  unchanged " + name))
		}
	}
	for _, e := range o.Errors {
		fmt.Println(ui.Errorf("%s: %s", ui.RuleName(e.Name), e.Message))
	}

	summary := fmt.Sprintf("%d added, %d updated, %d unchanged", len(o.Added), len(o.Updated), len(o.Skipped))
	if o.HasErrors() {
		summary += fmt.Sprintf(", %d failed", len(o.Errors))
	}
	if o.Total() == 0 {
		summary = "No rules to sync"
	}
	fmt.Println(ui.Bold.Render(summary))
}

// prefixed labels every item with the base directory it came from.
func prefixed(o *rulesync.Outcome, label string) *rulesync.Outcome {
	p := func(names []string) []string {
		out := make([]string, len(names))
		for i, n := range names {
			out[i] = label + ": " + n
		}
		return out
	}
	errs := make([]rulesync.ItemError, len(o.Errors))
	for i, e := range o.Errors {
		errs[i] = rulesync.ItemError{Name: label + ": " + e.Name, Message: e.Message}
	}
	return &rulesync.Outcome{Added: p(o.Added), Updated: p(o.Updated), Skipped: p(o.Skipped), Errors: errs}
}

func rootLabel(projectRoot, root string) string {
	if rel, err := filepath.Rel(projectRoot, root); err == nil {
		return filepath.ToSlash(rel)
	}
	return root
}

func init() {
	syncCmd.Flags().StringVar(&syncFrom, "from", "", "Import rules from a tool into .agentsync/rules")
	syncCmd.Flags().BoolVarP(&syncDryRun, "dry-run", "n", false, "Show what would change without writing")
	rootCmd.AddCommand(syncCmd)
}
