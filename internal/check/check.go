// Package check validates canonical and tool rule files.
package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aidanlsb/agentsync/internal/convert"
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/parser"
	"github.com/aidanlsb/agentsync/internal/paths"
)

// Issue represents a validation issue.
type Issue struct {
	Level    IssueLevel
	Tool     model.Tool
	FilePath string
	Line     int
	Message  string
}

// IssueLevel indicates the severity of an issue.
type IssueLevel int

const (
	LevelError IssueLevel = iota
	LevelWarning
)

func (l IssueLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARN"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets issues serialize with readable levels.
func (l IssueLevel) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}

// Run validates every rule file of the canonical format and of tools under
// root. Only a directory that cannot be listed is returned as an error.
func Run(root string, tools []model.Tool) ([]Issue, error) {
	var issues []Issue
	for _, t := range append([]model.Tool{model.ToolCanonical}, tools...) {
		files, err := paths.Discover(root, t)
		if err != nil {
			return issues, err
		}
		for _, file := range files {
			rel := displayPath(root, file)
			data, err := os.ReadFile(file)
			if err != nil {
				issues = append(issues, Issue{Level: LevelError, Tool: t, FilePath: rel, Message: fmt.Sprintf("cannot read file: %v", err)})
				continue
			}
			issues = append(issues, ValidateFile(t, rel, string(data))...)
		}
	}
	return issues, nil
}

// ValidateFile checks one rule file in t's format. file is the display path.
func ValidateFile(t model.Tool, file, text string) []Issue {
	var issues []Issue
	add := func(level IssueLevel, line int, format string, args ...any) {
		issues = append(issues, Issue{Level: level, Tool: t, FilePath: file, Line: line, Message: fmt.Sprintf(format, args...)})
	}

	if name, err := paths.RuleName(t, filepath.Base(file)); err != nil {
		add(LevelError, 0, "%v", err)
	} else if err := paths.ValidateRuleName(name); err != nil {
		add(LevelWarning, 0, "%v", err)
	}

	doc, err := convert.ParseAsCanonical(t, file, text)
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			add(LevelError, pe.Line, "%s", pe.Reason)
		} else {
			add(LevelError, keyLine(text, invalidKey(err)), "%v", err)
		}
		return issues
	}

	if t == model.ToolCanonical {
		for _, target := range doc.Frontmatter.Targets {
			if target == model.TargetAll {
				continue
			}
			if _, err := model.ParseTool(target); err != nil {
				add(LevelError, keyLine(text, "targets"), "%v", err)
			}
		}
	}

	for key, globs := range globFields(doc.Frontmatter) {
		for _, pattern := range parser.SplitGlobs(globs) {
			if !doublestar.ValidatePattern(pattern) {
				add(LevelError, keyLine(text, key), "invalid glob pattern %q in %s", pattern, key)
			}
		}
	}

	for _, d := range crossCheck(t, text) {
		add(LevelWarning, d.line, "%s", d.message)
	}

	body := strings.TrimSpace(doc.Content)
	switch {
	case body == "":
		add(LevelWarning, 0, "rule body is empty")
	case parser.Title(doc.Content) == "":
		add(LevelWarning, 0, "rule body has no title heading")
	}

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Line < issues[j].Line })
	return issues
}

// globFields returns the header keys holding glob lists, in canonical form.
func globFields(r model.CanonicalRule) map[string]string {
	out := map[string]string{"globs": r.Globs}
	if r.Cursor != nil {
		out["cursor.globs"] = r.Cursor.Globs
	}
	if r.Windsurf != nil {
		out["windsurf.globs"] = r.Windsurf.Globs
	}
	if r.Copilot != nil {
		out["copilot.applyTo"] = r.Copilot.ApplyTo
	}
	return out
}

func invalidKey(err error) string {
	var ive *parser.InvalidValueError
	if errors.As(err, &ive) {
		return ive.Key
	}
	return ""
}

// keyLine finds the document line of a header key. Nested keys are looked up
// by their last segment. It returns 0 when the key is not found.
func keyLine(text, key string) int {
	if key == "" {
		return 0
	}
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		key = key[idx+1:]
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 && strings.TrimRight(line, " \t\r") == "---" {
			break
		}
		if strings.HasPrefix(strings.TrimSpace(line), key+":") {
			return i + 1
		}
	}
	return 0
}

func displayPath(root, p string) string {
	if rel, err := filepath.Rel(root, p); err == nil {
		return filepath.ToSlash(rel)
	}
	return p
}

// Counts returns the number of errors and warnings in issues.
func Counts(issues []Issue) (errs, warnings int) {
	for _, issue := range issues {
		if issue.Level == LevelError {
			errs++
		} else {
			warnings++
		}
	}
	return errs, warnings
}
