// Package convert maps rules between the canonical format and each tool's
// format through a single Activation.
//
// Every tool-to-canonical conversion infers an Activation and hands it to
// BuildOverrides, so the three projections of one canonical rule always agree.
package convert

import (
	"strings"

	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/parser"
)

// IsUniversalGlob reports whether globs matches every file: "", "**" or "**/*".
func IsUniversalGlob(globs string) bool {
	switch strings.TrimSpace(globs) {
	case "", model.GlobAllDoubleStar, model.GlobAll:
		return true
	default:
		return false
	}
}

// Overrides is the full set of per-tool blocks plus the global glob string
// for one Activation.
type Overrides struct {
	Cursor   model.CursorOverride
	Windsurf model.WindsurfOverride
	Copilot  model.CopilotOverride
	Globs    string
}

// BuildOverrides is the only place per-tool blocks are derived from a mode.
func BuildOverrides(a model.Activation) Overrides {
	switch a.Mode {
	case model.ModeAlwaysOn:
		return Overrides{
			Cursor:   model.CursorOverride{AlwaysApply: true},
			Windsurf: model.WindsurfOverride{Trigger: model.TriggerAlwaysOn},
			Copilot:  model.CopilotOverride{ApplyTo: model.GlobAllDoubleStar},
			Globs:    model.GlobAll,
		}
	case model.ModeManual:
		return Overrides{
			Windsurf: model.WindsurfOverride{Trigger: model.TriggerManual},
			Copilot:  model.CopilotOverride{ApplyTo: model.GlobAllDoubleStar},
			Globs:    model.GlobAll,
		}
	case model.ModeGlob:
		g := parser.NormalizeGlobs(a.Globs)
		return Overrides{
			Cursor:   model.CursorOverride{Globs: g},
			Windsurf: model.WindsurfOverride{Trigger: model.TriggerGlob, Globs: g},
			Copilot:  model.CopilotOverride{ApplyTo: g},
			Globs:    g,
		}
	default:
		return Overrides{
			Windsurf: model.WindsurfOverride{Trigger: model.TriggerModelDecision},
			Copilot:  model.CopilotOverride{ApplyTo: model.GlobAllDoubleStar},
			Globs:    model.GlobAll,
		}
	}
}

// NewRule assembles a canonical rule targeting every tool, with every
// override block filled in for a.
func NewRule(description string, a model.Activation) model.CanonicalRule {
	o := BuildOverrides(a)
	cursor, windsurf, copilot := o.Cursor, o.Windsurf, o.Copilot
	return model.CanonicalRule{
		Targets:     []string{model.TargetAll},
		Description: description,
		Globs:       o.Globs,
		Cursor:      &cursor,
		Windsurf:    &windsurf,
		Copilot:     &copilot,
	}
}

// InferCanonical reports the Activation a canonical rule expresses. Overrides
// win over the global fields; windsurf's trigger is the most precise, then
// cursor, then copilot.
func InferCanonical(r model.CanonicalRule) model.Activation {
	switch {
	case r.Windsurf != nil:
		return InferWindsurf(model.WindsurfRule{Trigger: r.Windsurf.Trigger, Description: r.Description, Globs: r.Windsurf.Globs})
	case r.Cursor != nil:
		return InferCursor(model.CursorRule{Description: r.Description, AlwaysApply: r.Cursor.AlwaysApply, Globs: r.Cursor.Globs})
	case r.Copilot != nil:
		return InferCopilot(model.CopilotRule{ApplyTo: r.Copilot.ApplyTo})
	case !IsUniversalGlob(r.Globs):
		return model.Glob(parser.NormalizeGlobs(r.Globs))
	case r.Description != "":
		return model.Intelligent()
	default:
		return model.Manual()
	}
}
