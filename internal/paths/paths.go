// Package paths knows where each tool keeps its rules:
// - which directory holds a tool's rule files (e.g. ".cursor/rules")
// - which file suffix marks a rule (e.g. ".instructions.md" for Copilot)
// - how rule names map to file names and back
//
// Every path it hands out for writing has passed the security checks, so the
// sync engine, the CLI, and the checker agree on layout and containment.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/security"
)

// ConfigFileName is the project config file at the project root.
const ConfigFileName = "agentsync.json"

// Dir returns the project-relative directory holding t's rules, using '/'.
//
// Examples:
// - agentsync -> ".agentsync/rules"
// - copilot   -> ".github/instructions"
func Dir(t model.Tool) string {
	switch t {
	case model.ToolCanonical:
		return ".agentsync/rules"
	case model.ToolCursor:
		return ".cursor/rules"
	case model.ToolWindsurf:
		return ".windsurf/rules"
	case model.ToolCopilot:
		return ".github/instructions"
	default:
		return ""
	}
}

// Suffix returns the file-name suffix that marks a rule file for t.
func Suffix(t model.Tool) string {
	switch t {
	case model.ToolCursor:
		return ".mdc"
	case model.ToolCopilot:
		return ".instructions.md"
	default:
		return ".md"
	}
}

// ErrEmptyRuleName is returned when a file name has nothing before its suffix.
var ErrEmptyRuleName = errors.New("rule name is empty")

// RuleName derives a rule name from a file name or path by stripping the
// tool's suffix. Copilot's ".instructions.md" is stripped as a whole.
//
// Examples:
// - "python-style.mdc"              (cursor)  -> "python-style"
// - "python-style.instructions.md"  (copilot) -> "python-style"
func RuleName(t model.Tool, file string) (string, error) {
	base := filepath.Base(filepath.ToSlash(file))
	suffix := Suffix(t)
	if !strings.HasSuffix(base, suffix) {
		return "", fmt.Errorf("%s: not a %s rule file (want *%s)", base, t, suffix)
	}
	name := strings.TrimSuffix(base, suffix)
	if name == "" {
		return "", fmt.Errorf("%s: %w", base, ErrEmptyRuleName)
	}
	return name, nil
}

// FileName is the inverse of RuleName.
func FileName(t model.Tool, rule string) string {
	return rule + Suffix(t)
}

// RulePath returns the absolute-or-root-relative path for rule in t's
// directory under root. rule must not climb or be absolute, and the result
// must resolve inside root.
func RulePath(root string, t model.Tool, rule string) (string, error) {
	if err := security.ValidateRelative(rule); err != nil {
		return "", err
	}
	if strings.ContainsAny(rule, `/\`) {
		return "", &InvalidRuleNameError{Name: rule, Reason: "must not contain path separators"}
	}
	p := filepath.Join(root, filepath.FromSlash(Dir(t)), FileName(t, rule))
	if err := security.ValidateWithin(root, p); err != nil {
		return "", err
	}
	return p, nil
}

// Discover lists rule files for t directly inside its directory under root,
// sorted by name. A missing directory yields no files and no error; any other
// listing failure is returned.
func Discover(root string, t model.Tool) ([]string, error) {
	dir := filepath.Join(root, filepath.FromSlash(Dir(t)))
	if err := security.ValidateWithin(root, dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	suffix := Suffix(t)
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		// Skip dotfiles, including in-flight atomic writes.
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if err := security.ValidateWithin(root, p); err != nil {
			continue
		}
		files = append(files, p)
	}
	sort.Strings(files)
	return files, nil
}

// InvalidRuleNameError reports a rule name that cannot be used for a new rule.
type InvalidRuleNameError struct {
	Name   string
	Reason string
}

func (e *InvalidRuleNameError) Error() string {
	return fmt.Sprintf("invalid rule name %q: %s", e.Name, e.Reason)
}

// ValidateRuleName enforces kebab-case names for newly created rules:
// lowercase ASCII letters, digits and single hyphens, not at either end.
func ValidateRuleName(name string) error {
	if name == "" {
		return &InvalidRuleNameError{Name: name, Reason: "cannot be empty"}
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return &InvalidRuleNameError{Name: name, Reason: "must not contain path separators or '..'"}
	}
	for _, r := range name {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-' {
			return &InvalidRuleNameError{Name: name, Reason: "use lowercase letters, digits and hyphens"}
		}
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") || strings.Contains(name, "--") {
		return &InvalidRuleNameError{Name: name, Reason: "hyphens must separate words"}
	}
	return nil
}
