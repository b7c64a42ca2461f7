package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/agentsync/internal/buildinfo"
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/ui"
)

type versionInfo struct {
	buildinfo.Info
	Tools []string `json:"tools"`
}

var readBuildInfo = buildinfo.Current

var versionCmd = &cobra.Command{
	Use:  "version",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := versionInfo{Info: readBuildInfo(), Tools: model.ToolNames()}

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		fmt.Printf("agentsync %s\n", ui.Bold.Render(info.Version))
		t := ui.NewTable(2)
		t.AddRow(ui.Muted.Render("module"), info.ModulePath)
		if info.Commit != "" {
			commit := info.Commit
			if info.Modified {
				commit += " (modified)"
			}
			t.AddRow(ui.Muted.Render("commit"), commit)
		}
		if info.CommitTime != "" {
			t.AddRow(ui.Muted.Render("built"), info.CommitTime)
		}
		t.AddRow(ui.Muted.Render("go"), info.GoVersion)
		t.AddRow(ui.Muted.Render("platform"), info.GOOS+"/"+info.GOARCH)
		t.AddRow(ui.Muted.Render("tools"), strings.Join(info.Tools, ", "))
		fmt.Print(t.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
