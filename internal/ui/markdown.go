package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

const defaultCodeTheme = "monokai"

var markdownCodeTheme = defaultCodeTheme

// ConfigureMarkdownCodeTheme sets the chroma theme used for fenced code
// blocks. An empty name restores the default.
func ConfigureMarkdownCodeTheme(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultCodeTheme
	}
	markdownCodeTheme = name
}

// RenderMarkdown renders a rule body or guide for terminal display.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour pads with blank lines; keep exactly one trailing newline.
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// markdownStyle starts from glamour's dark or light theme and keeps heading
// markers visible, so a rendered rule still reads like the file it came from.
func markdownStyle() ansi.StyleConfig {
	style := styles.LightStyleConfig
	if lipgloss.HasDarkBackground() {
		style = styles.DarkStyleConfig
	}

	style.Document.Margin = uintPtr(MarkdownRenderMargin)
	style.Document.BlockPrefix = "\n"
	style.Document.BlockSuffix = "\n"

	style.Heading.Bold = boolPtr(true)
	if color, ok := AccentColor(); ok {
		style.Heading.Color = stringPtr(color)
	}
	for level, block := range []*ansi.StyleBlock{&style.H1, &style.H2, &style.H3, &style.H4, &style.H5, &style.H6} {
		block.Prefix = strings.Repeat("#", level+1) + " "
		block.Suffix = ""
		block.BackgroundColor = nil
		block.Color = nil
	}

	style.CodeBlock.Theme = markdownCodeTheme
	style.CodeBlock.Margin = uintPtr(MarkdownRenderMargin)
	return style
}

func boolPtr(v bool) *bool { return &v }

func stringPtr(v string) *string { return &v }

func uintPtr(v uint) *uint { return &v }
