// Package model defines the canonical rule format, the three tool-specific
// rule formats, and the activation modes that connect them.
package model

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Tool identifies a rule format.
type Tool string

const (
	// ToolCanonical is agentsync's own format under .agentsync/rules.
	ToolCanonical Tool = "agentsync"
	ToolCursor    Tool = "cursor"
	ToolWindsurf  Tool = "windsurf"
	ToolCopilot   Tool = "copilot"
)

// TargetAll in a rule's targets list selects every tool.
const TargetAll = "*"

// SyncTools returns the tools rules can be projected to, in a stable order.
func SyncTools() []Tool {
	return []Tool{ToolCursor, ToolWindsurf, ToolCopilot}
}

func (t Tool) String() string { return string(t) }

// DisplayName is the human-facing product name.
func (t Tool) DisplayName() string {
	switch t {
	case ToolCanonical:
		return "AgentSync"
	case ToolCursor:
		return "Cursor"
	case ToolWindsurf:
		return "Windsurf"
	case ToolCopilot:
		return "GitHub Copilot"
	default:
		return string(t)
	}
}

// ToolNames returns the identifiers accepted by ParseTool.
func ToolNames() []string {
	tools := SyncTools()
	out := make([]string, len(tools))
	for i, t := range tools {
		out[i] = string(t)
	}
	return out
}

// ParseTool resolves a configured tool identifier.
func ParseTool(name string) (Tool, error) {
	for _, t := range SyncTools() {
		if name == string(t) {
			return t, nil
		}
	}
	return "", &UnknownToolError{Name: name, Suggestion: suggestTool(name)}
}

// ParseTools resolves a list of identifiers, stopping at the first unknown one.
func ParseTools(names []string) ([]Tool, error) {
	out := make([]Tool, 0, len(names))
	for _, n := range names {
		t, err := ParseTool(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// UnknownToolError reports an unsupported tool identifier.
type UnknownToolError struct {
	Name string
	// Suggestion is a human hint such as "Did you mean 'cursor'?", or "".
	Suggestion string
}

func (e *UnknownToolError) Error() string {
	msg := fmt.Sprintf("invalid tool name: %q (valid tools: %s)", e.Name, strings.Join(ToolNames(), ", "))
	if e.Suggestion != "" {
		msg += ". " + e.Suggestion
	}
	return msg
}

var toolAliases = map[string]string{
	"github-copilot": "Did you mean 'copilot'?",
	"github_copilot": "Did you mean 'copilot'?",
	"githubcopilot":  "Did you mean 'copilot'?",
	"vscode-copilot": "Did you mean 'copilot'?",
	"vscode_copilot": "Did you mean 'copilot'?",
	"cascade":        "This tool is not yet supported",
	"codeium":        "This tool is not yet supported",
}

// suggestTool returns an alias hint, or the nearest valid tool by edit
// distance for inputs long enough to be a plausible typo.
func suggestTool(name string) string {
	lower := strings.ToLower(name)
	if hint, ok := toolAliases[lower]; ok {
		return hint
	}
	if len(name) <= 2 {
		return ""
	}

	best, bestDist := "", -1
	for _, candidate := range ToolNames() {
		d := levenshtein.ComputeDistance(lower, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return fmt.Sprintf("Did you mean '%s'?", best)
}
