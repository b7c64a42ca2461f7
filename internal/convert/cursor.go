package convert

import (
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/parser"
)

// InferCursor: alwaysApply wins, then globs, then a description; otherwise manual.
func InferCursor(r model.CursorRule) model.Activation {
	switch {
	case r.AlwaysApply:
		return model.AlwaysOn()
	case parser.NormalizeGlobs(r.Globs) != "":
		return model.Glob(parser.NormalizeGlobs(r.Globs))
	case r.Description != "":
		return model.Intelligent()
	default:
		return model.Manual()
	}
}

func CursorToCanonical(r model.CursorRule) model.CanonicalRule {
	return NewRule(r.Description, InferCursor(r))
}

// CanonicalToCursor projects r for Cursor. An always-apply rule carries no
// description or globs.
func CanonicalToCursor(r model.CanonicalRule) model.CursorRule {
	alwaysApply := r.Cursor != nil && r.Cursor.AlwaysApply
	if alwaysApply {
		return model.CursorRule{AlwaysApply: true}
	}

	var globs string
	if r.Cursor != nil {
		globs = parser.NormalizeGlobs(r.Cursor.Globs)
	} else if !IsUniversalGlob(r.Globs) {
		globs = parser.NormalizeGlobs(r.Globs)
	}
	return model.CursorRule{Description: r.Description, Globs: globs}
}
