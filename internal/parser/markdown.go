package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading represents a parsed heading.
type Heading struct {
	Level int
	Text  string
	Line  int // 1-indexed
}

// ExtractHeadings extracts headings from markdown content using goldmark.
func ExtractHeadings(content string, startLine int) []Heading {
	var headings []Heading

	md := goldmark.New()
	reader := text.NewReader([]byte(content))
	doc := md.Parser().Parse(reader)

	lineStarts := computeLineStarts(content)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var textBuilder strings.Builder
		for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
			collectText(&textBuilder, child, []byte(content))
		}
		headingText := strings.TrimSpace(textBuilder.String())
		if headingText == "" {
			return ast.WalkSkipChildren, nil
		}

		line := startLine
		if heading.Lines().Len() > 0 {
			line = startLine + offsetToLine(lineStarts, heading.Lines().At(0).Start)
		}

		headings = append(headings, Heading{
			Level: heading.Level,
			Text:  headingText,
			Line:  line,
		})
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// Title returns the text of the first level-1 heading, or "".
func Title(content string) string {
	for _, h := range ExtractHeadings(content, 1) {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

// collectText gathers inline text, descending into emphasis and code spans.
func collectText(b *strings.Builder, n ast.Node, source []byte) {
	if t, ok := n.(*ast.Text); ok {
		b.Write(t.Segment.Value(source))
		if t.SoftLineBreak() {
			b.WriteByte(' ')
		}
		return
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		collectText(b, child, source)
	}
}

// computeLineStarts computes the byte offset of each line start.
func computeLineStarts(content string) []int {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine converts a byte offset to a 0-indexed line number.
func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}
