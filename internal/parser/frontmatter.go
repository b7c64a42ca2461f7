// Package parser splits rule files into a frontmatter header and a markdown
// body, scans the header without a general YAML parser, and writes both back
// in a stable field order.
package parser

import (
	"fmt"
	"strings"
)

const delimiter = "---"

// ParseError reports a structurally malformed rule file.
type ParseError struct {
	File   string
	Line   int // 1-indexed, 0 when unknown
	Reason string
}

func (e *ParseError) Error() string {
	file := e.File
	if file == "" {
		file = "unknown"
	}
	if e.Line > 0 {
		return fmt.Sprintf("invalid frontmatter in %s at line %d: %s", file, e.Line, e.Reason)
	}
	return fmt.Sprintf("invalid frontmatter in %s: %s", file, e.Reason)
}

// InvalidValueError reports a header value that cannot be coerced to the type
// a schema expects, such as a nested block where a string is required.
type InvalidValueError struct {
	File  string
	Key   string
	Value string
	Want  string
}

func (e *InvalidValueError) Error() string {
	file := e.File
	if file == "" {
		file = "unknown"
	}
	if e.Value == "" {
		return fmt.Sprintf("invalid value for %q in %s: expected %s", e.Key, file, e.Want)
	}
	return fmt.Sprintf("invalid value %q for %q in %s: expected %s", e.Value, e.Key, file, e.Want)
}

// FrontmatterBounds returns the index of the closing delimiter line.
// It only detects frontmatter when the first line is '---'.
// If frontmatter is present but unclosed, endLine is -1.
func FrontmatterBounds(lines []string) (endLine int, ok bool) {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\r") != delimiter {
		return -1, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\r") == delimiter {
			return i, true
		}
	}
	return -1, true
}

// Split separates a rule file into its raw header block and its body.
//
// Leading whitespace before the opening delimiter is ignored. The body is
// everything after the closing delimiter with leading whitespace removed.
func Split(text string) (header string, body string, err error) {
	text = strings.TrimLeft(text, " \t\r\n")
	lines := strings.Split(text, "\n")

	end, ok := FrontmatterBounds(lines)
	if !ok {
		return "", "", &ParseError{Line: 1, Reason: "missing opening delimiter"}
	}
	if end == -1 {
		return "", "", &ParseError{Reason: "missing closing delimiter"}
	}

	header = strings.Join(lines[1:end], "\n")
	if end+1 < len(lines) {
		body = strings.TrimLeft(strings.Join(lines[end+1:], "\n"), " \t\r\n")
	}
	return header, body, nil
}

// Parse splits text and scans its header. file is only used in errors.
func Parse(file, text string) (*Header, string, error) {
	block, body, err := Split(text)
	if err != nil {
		return nil, "", withFile(err, file)
	}
	// The header block starts on the line after the opening delimiter.
	h, err := ParseHeader(block, 2)
	if err != nil {
		return nil, "", withFile(err, file)
	}
	h.file = file
	return h, body, nil
}

func withFile(err error, file string) error {
	switch e := err.(type) {
	case *ParseError:
		e.File = file
	case *InvalidValueError:
		e.File = file
	}
	return err
}
