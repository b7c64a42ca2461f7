package model

import (
	"strings"

	"github.com/aidanlsb/agentsync/internal/parser"
)

// DecodeCanonical reads a canonical rule from a scanned header. Missing
// fields take their defaults.
func DecodeCanonical(h *parser.Header) (CanonicalRule, error) {
	r := NewCanonicalRule()

	targets, err := h.List("targets")
	if err != nil {
		return r, err
	}
	if len(targets) > 0 {
		r.Targets = targets
	}
	if r.Description, err = h.String("description"); err != nil {
		return r, err
	}
	globs, err := h.StringOr("globs", GlobAll)
	if err != nil {
		return r, err
	}
	r.Globs = parser.NormalizeGlobs(globs)

	if ok, err := overridePresent(h, "cursor"); err != nil {
		return r, err
	} else if ok {
		globs, err := h.String("cursor.globs")
		if err != nil {
			return r, err
		}
		r.Cursor = &CursorOverride{
			AlwaysApply: h.Bool("cursor.alwaysApply", false),
			Globs:       parser.NormalizeGlobs(globs),
		}
	}

	if ok, err := overridePresent(h, "windsurf"); err != nil {
		return r, err
	} else if ok {
		trigger, err := decodeTrigger(h, "windsurf.trigger")
		if err != nil {
			return r, err
		}
		globs, err := h.String("windsurf.globs")
		if err != nil {
			return r, err
		}
		r.Windsurf = &WindsurfOverride{Trigger: trigger, Globs: parser.NormalizeGlobs(globs)}
	}

	if ok, err := overridePresent(h, "copilot"); err != nil {
		return r, err
	} else if ok {
		applyTo, err := h.StringOr("copilot.applyTo", GlobAllDoubleStar)
		if err != nil {
			return r, err
		}
		r.Copilot = &CopilotOverride{ApplyTo: parser.NormalizeGlobs(applyTo)}
	}

	return r, nil
}

// DecodeCursor reads a Cursor rule.
func DecodeCursor(h *parser.Header) (CursorRule, error) {
	var r CursorRule
	var err error
	if r.Description, err = h.String("description"); err != nil {
		return r, err
	}
	r.AlwaysApply = h.Bool("alwaysApply", false)
	globs, err := h.String("globs")
	if err != nil {
		return r, err
	}
	r.Globs = parser.NormalizeGlobs(globs)
	return r, nil
}

// DecodeWindsurf reads a Windsurf rule. An unknown trigger is an error.
func DecodeWindsurf(h *parser.Header) (WindsurfRule, error) {
	var r WindsurfRule
	var err error
	if r.Trigger, err = decodeTrigger(h, "trigger"); err != nil {
		return r, err
	}
	if r.Description, err = h.String("description"); err != nil {
		return r, err
	}
	globs, err := h.String("globs")
	if err != nil {
		return r, err
	}
	r.Globs = parser.NormalizeGlobs(globs)
	return r, nil
}

// DecodeCopilot reads a Copilot instructions file.
func DecodeCopilot(h *parser.Header) (CopilotRule, error) {
	var r CopilotRule
	var err error
	if r.Description, err = h.String("description"); err != nil {
		return r, err
	}
	applyTo, err := h.StringOr("applyTo", GlobAllDoubleStar)
	if err != nil {
		return r, err
	}
	r.ApplyTo = parser.NormalizeGlobs(applyTo)
	return r, nil
}

func decodeTrigger(h *parser.Header, key string) (WindsurfTrigger, error) {
	raw, err := h.String(key)
	if err != nil {
		return "", err
	}
	trigger, ok := ParseTrigger(strings.TrimSpace(raw))
	if !ok {
		return "", &parser.InvalidValueError{
			File:  h.File(),
			Key:   key,
			Value: raw,
			Want:  "one of manual, always_on, model_decision, glob",
		}
	}
	return trigger, nil
}

// overridePresent treats an empty "key:" as absent and a scalar as a type error.
func overridePresent(h *parser.Header, key string) (bool, error) {
	if h.HasBlock(key) {
		return true, nil
	}
	v, err := h.String(key)
	if err != nil || v == "" {
		return false, err
	}
	return false, &parser.InvalidValueError{File: h.File(), Key: key, Value: v, Want: "a nested mapping"}
}
