package convert

import (
	"fmt"

	"github.com/aidanlsb/agentsync/internal/model"
)

// RenderForTool converts a canonical document and serializes it in t's format.
func RenderForTool(t model.Tool, doc model.Document[model.CanonicalRule]) (string, error) {
	switch t {
	case model.ToolCanonical:
		return doc.Serialize(), nil
	case model.ToolCursor:
		return model.Document[model.CursorRule]{Frontmatter: CanonicalToCursor(doc.Frontmatter), Content: doc.Content}.Serialize(), nil
	case model.ToolWindsurf:
		return model.Document[model.WindsurfRule]{Frontmatter: CanonicalToWindsurf(doc.Frontmatter), Content: doc.Content}.Serialize(), nil
	case model.ToolCopilot:
		return model.Document[model.CopilotRule]{Frontmatter: CanonicalToCopilot(doc.Frontmatter), Content: doc.Content}.Serialize(), nil
	default:
		return "", fmt.Errorf("no converter for tool %q", t)
	}
}

// ParseAsCanonical parses text in t's format and converts it to canonical.
func ParseAsCanonical(t model.Tool, file, text string) (model.Document[model.CanonicalRule], error) {
	switch t {
	case model.ToolCanonical:
		return model.ParseCanonical(file, text)
	case model.ToolCursor:
		doc, err := model.ParseCursor(file, text)
		if err != nil {
			return model.Document[model.CanonicalRule]{}, err
		}
		return model.Document[model.CanonicalRule]{Frontmatter: CursorToCanonical(doc.Frontmatter), Content: doc.Content}, nil
	case model.ToolWindsurf:
		doc, err := model.ParseWindsurf(file, text)
		if err != nil {
			return model.Document[model.CanonicalRule]{}, err
		}
		return model.Document[model.CanonicalRule]{Frontmatter: WindsurfToCanonical(doc.Frontmatter), Content: doc.Content}, nil
	case model.ToolCopilot:
		doc, err := model.ParseCopilot(file, text)
		if err != nil {
			return model.Document[model.CanonicalRule]{}, err
		}
		return model.Document[model.CanonicalRule]{Frontmatter: CopilotToCanonical(doc.Frontmatter), Content: doc.Content}, nil
	default:
		return model.Document[model.CanonicalRule]{}, fmt.Errorf("no converter for tool %q", t)
	}
}

// ActivationOf parses text in t's format and reports its activation.
func ActivationOf(t model.Tool, file, text string) (model.Activation, error) {
	doc, err := ParseAsCanonical(t, file, text)
	if err != nil {
		return model.Activation{}, err
	}
	return InferCanonical(doc.Frontmatter), nil
}
