package convert

import (
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/parser"
)

// InferWindsurf maps the trigger one-to-one.
func InferWindsurf(r model.WindsurfRule) model.Activation {
	switch r.Trigger {
	case model.TriggerAlwaysOn:
		return model.AlwaysOn()
	case model.TriggerManual:
		return model.Manual()
	case model.TriggerGlob:
		return model.Glob(parser.NormalizeGlobs(r.Globs))
	default:
		return model.Intelligent()
	}
}

// WindsurfToCanonical keeps windsurf's own trigger and globs in its override,
// so a glob-less "glob" trigger survives the round trip.
func WindsurfToCanonical(r model.WindsurfRule) model.CanonicalRule {
	c := NewRule(r.Description, InferWindsurf(r))
	trigger := r.Trigger
	if trigger == "" {
		trigger = model.DefaultTrigger
	}
	c.Windsurf = &model.WindsurfOverride{Trigger: trigger, Globs: parser.NormalizeGlobs(r.Globs)}
	return c
}

// CanonicalToWindsurf projects r for Windsurf. Without an override the trigger
// is glob for non-universal global globs and model_decision otherwise.
func CanonicalToWindsurf(r model.CanonicalRule) model.WindsurfRule {
	var trigger model.WindsurfTrigger
	var globs string
	switch {
	case r.Windsurf != nil:
		trigger = r.Windsurf.Trigger
		globs = parser.NormalizeGlobs(r.Windsurf.Globs)
	case !IsUniversalGlob(r.Globs):
		trigger = model.TriggerGlob
		globs = parser.NormalizeGlobs(r.Globs)
	default:
		trigger = model.DefaultTrigger
	}
	if trigger == "" {
		trigger = model.DefaultTrigger
	}

	if trigger == model.TriggerAlwaysOn {
		return model.WindsurfRule{Trigger: trigger}
	}
	return model.WindsurfRule{Trigger: trigger, Description: r.Description, Globs: globs}
}
