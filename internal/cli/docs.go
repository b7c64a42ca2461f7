package cli

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/aidanlsb/agentsync/docs"
	"github.com/aidanlsb/agentsync/internal/parser"
	"github.com/aidanlsb/agentsync/internal/ui"
)

const docsDir = "guide"

var (
	docsRaw            bool
	docsMarkdownRender = ui.RenderMarkdown
)

type docsTopicView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

var docsCmd = &cobra.Command{
	Use:  "docs [topic]",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := docsTopics()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(map[string]any{"topics": topics}, &Meta{Count: len(topics)})
				return nil
			}
			tbl := ui.NewTable(2)
			for _, t := range topics {
				tbl.AddRow(ui.Accent.Render(t.ID), t.Title)
			}
			fmt.Print(tbl.String())
			fmt.Println()
			fmt.Println(ui.Hint("Read one with: agentsync docs <topic>"))
			return nil
		}

		id := strings.TrimSuffix(strings.ToLower(args[0]), ".md")
		data, err := fs.ReadFile(builtindocs.FS, path.Join(docsDir, id+".md"))
		if err != nil {
			var ids []string
			for _, t := range topics {
				ids = append(ids, t.ID)
			}
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown docs topic '%s'", args[0]),
				"Available topics: "+strings.Join(ids, ", "))
		}
		content := string(data)

		if isJSONOutput() {
			outputSuccess(map[string]any{"id": id, "title": parser.Title(content), "content": content}, nil)
			return nil
		}
		if docsRaw || !ui.IsTTY() {
			fmt.Print(content)
			return nil
		}
		rendered, err := docsMarkdownRender(content, ui.TermWidth()-ui.MarkdownRenderMargin)
		if err != nil {
			fmt.Print(content)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

// docsTopics lists the embedded guides sorted by id. Titles come from each
// guide's first heading.
func docsTopics() ([]docsTopicView, error) {
	entries, err := fs.ReadDir(builtindocs.FS, docsDir)
	if err != nil {
		return nil, err
	}
	var topics []docsTopicView
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := fs.ReadFile(builtindocs.FS, path.Join(docsDir, e.Name()))
		if err != nil {
			return nil, err
		}
		topics = append(topics, docsTopicView{
			ID:    strings.TrimSuffix(e.Name(), ".md"),
			Title: parser.Title(string(data)),
		})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })
	return topics, nil
}

func init() {
	docsCmd.Flags().BoolVar(&docsRaw, "raw", false, "Print the guide without markdown rendering")
	rootCmd.AddCommand(docsCmd)
}
