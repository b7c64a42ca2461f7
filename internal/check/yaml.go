package check

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/parser"
)

// knownKeys lists the header keys each format reads. Nested keys are written
// "parent.key".
var knownKeys = map[model.Tool][]string{
	model.ToolCanonical: {
		"targets", "description", "globs",
		"cursor", "cursor.alwaysApply", "cursor.globs",
		"windsurf", "windsurf.trigger", "windsurf.globs",
		"copilot", "copilot.applyTo",
	},
	model.ToolCursor:   {"description", "alwaysApply", "globs"},
	model.ToolWindsurf: {"trigger", "description", "globs"},
	model.ToolCopilot:  {"description", "applyTo"},
}

type finding struct {
	line    int
	message string
}

// crossCheck decodes the header with a real YAML parser and reports what the
// header scanner would silently ignore: unknown keys, mappings nested more
// than one level, and list items that are not scalars. Headers that are not
// strict YAML are reported once, since other tools may read them differently.
func crossCheck(t model.Tool, text string) []finding {
	block, _, err := parser.Split(text)
	if err != nil || strings.TrimSpace(block) == "" {
		return nil
	}
	offset := headerOffset(text)

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return []finding{{message: fmt.Sprintf("header is not strict YAML (%v); other tools may read it differently", err)}}
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return []finding{{line: offset + root.Line - 1, message: "header is not a key/value mapping"}}
	}

	known := make(map[string]bool)
	for _, k := range knownKeys[t] {
		known[k] = true
	}

	var out []finding
	var walk func(prefix string, m *yaml.Node, depth int)
	walk = func(prefix string, m *yaml.Node, depth int) {
		for i := 0; i+1 < len(m.Content); i += 2 {
			key, value := m.Content[i], m.Content[i+1]
			name := prefix + key.Value
			line := offset + key.Line - 1
			if !known[name] {
				out = append(out, finding{line: line, message: fmt.Sprintf("unknown key %q is ignored", name)})
				continue
			}
			switch value.Kind {
			case yaml.MappingNode:
				if depth > 0 {
					out = append(out, finding{line: line, message: fmt.Sprintf("nested mapping under %q is ignored", name)})
					continue
				}
				walk(name+".", value, depth+1)
			case yaml.SequenceNode:
				for _, item := range value.Content {
					if item.Kind != yaml.ScalarNode {
						out = append(out, finding{
							line:    offset + item.Line - 1,
							message: fmt.Sprintf("list item under %q is not a plain value", name),
						})
					}
				}
			case yaml.AliasNode:
				out = append(out, finding{line: line, message: fmt.Sprintf("alias under %q is not expanded", name)})
			}
		}
	}
	walk("", root, 0)
	return out
}

// headerOffset returns the document line of the first header line.
func headerOffset(text string) int {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	return strings.Count(text[:len(text)-len(trimmed)], "\n") + 2
}
