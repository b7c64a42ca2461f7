package convert

import (
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/parser"
)

// InferCopilot can only tell "everything" from "these patterns". Manual and
// intelligent rules both come back as always-on.
func InferCopilot(r model.CopilotRule) model.Activation {
	if IsUniversalGlob(r.ApplyTo) {
		return model.AlwaysOn()
	}
	return model.Glob(parser.NormalizeGlobs(r.ApplyTo))
}

func CopilotToCanonical(r model.CopilotRule) model.CanonicalRule {
	return NewRule(r.Description, InferCopilot(r))
}

// CanonicalToCopilot always carries the description.
func CanonicalToCopilot(r model.CanonicalRule) model.CopilotRule {
	applyTo := model.GlobAllDoubleStar
	switch {
	case r.Copilot != nil:
		applyTo = parser.NormalizeGlobs(r.Copilot.ApplyTo)
	case !IsUniversalGlob(r.Globs):
		applyTo = parser.NormalizeGlobs(r.Globs)
	}
	if IsUniversalGlob(applyTo) {
		applyTo = model.GlobAllDoubleStar
	}
	return model.CopilotRule{Description: r.Description, ApplyTo: applyTo}
}
