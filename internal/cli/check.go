package cli

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/agentsync/internal/check"
	"github.com/aidanlsb/agentsync/internal/ui"
)

var (
	checkStrict bool
)

type checkIssue struct {
	Level   check.IssueLevel `json:"level"`
	Tool    string           `json:"tool"`
	File    string           `json:"file"`
	Line    int              `json:"line,omitempty"`
	Message string           `json:"message"`
}

var checkCmd = &cobra.Command{
	Use:  "check",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProject()
		if err != nil {
			return err
		}

		var issues []checkIssue
		var errorCount, warningCount int
		roots := pc.Roots()
		for _, root := range roots {
			found, err := check.Run(root, pc.Tools)
			if err != nil {
				return handleError(ErrDirectoryListFail, err, "")
			}
			errs, warns := check.Counts(found)
			errorCount += errs
			warningCount += warns
			label := rootLabel(pc.Root, root)
			for _, issue := range found {
				file := issue.FilePath
				if len(roots) > 1 {
					file = path.Join(label, file)
				}
				issues = append(issues, checkIssue{
					Level:   issue.Level,
					Tool:    issue.Tool.String(),
					File:    file,
					Line:    issue.Line,
					Message: issue.Message,
				})
			}
		}

		failed := errorCount > 0 || (checkStrict && warningCount > 0)

		if isJSONOutput() {
			data := map[string]any{
				"issues":   issues,
				"errors":   errorCount,
				"warnings": warningCount,
			}
			if failed {
				outputError(ErrValidationFailed, fmt.Sprintf("found %d errors and %d warnings", errorCount, warningCount), data, "")
				return errSilent
			}
			outputSuccess(data, &Meta{Count: len(issues)})
			return nil
		}

		for _, issue := range issues {
			loc := issue.File
			if issue.Line > 0 {
				loc = fmt.Sprintf("%s:%d", issue.File, issue.Line)
			}
			if issue.Level == check.LevelWarning {
				fmt.Println(ui.Warningf("%s %s", ui.FilePath(loc), issue.Message))
			} else {
				fmt.Println(ui.Errorf("%s %s", ui.FilePath(loc), issue.Message))
			}
		}

		if len(issues) == 0 {
			fmt.Println(ui.Success("No issues found."))
		} else {
			fmt.Println()
			status := "Check passed"
			if failed {
				status = "Check failed"
			}
			fmt.Println(ui.Bold.Render(status) + " " + ui.ErrorWarningCounts(errorCount, warningCount))
		}

		if failed {
			return errSilent
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Treat warnings as errors")
	rootCmd.AddCommand(checkCmd)
}
