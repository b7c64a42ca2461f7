package model

import (
	"github.com/aidanlsb/agentsync/internal/parser"
)

// Universal glob spellings written by each format.
const (
	GlobAll           = "**/*"
	GlobAllDoubleStar = "**"
)

// CanonicalRule is the frontmatter of a rule under .agentsync/rules.
type CanonicalRule struct {
	// Targets lists tool identifiers, or "*" for every tool.
	Targets []string `json:"targets"`

	Description string `json:"description"`

	// Globs is the fallback pattern list for tools without an override.
	Globs string `json:"globs"`

	// Per-tool overrides. A nil override means the global fields apply.
	Cursor   *CursorOverride   `json:"cursor,omitempty"`
	Windsurf *WindsurfOverride `json:"windsurf,omitempty"`
	Copilot  *CopilotOverride  `json:"copilot,omitempty"`
}

// CursorOverride is the canonical rule's cursor block.
type CursorOverride struct {
	AlwaysApply bool   `json:"alwaysApply"`
	Globs       string `json:"globs"`
}

// WindsurfOverride is the canonical rule's windsurf block.
type WindsurfOverride struct {
	Trigger WindsurfTrigger `json:"trigger"`
	Globs   string          `json:"globs"`
}

// CopilotOverride is the canonical rule's copilot block.
type CopilotOverride struct {
	ApplyTo string `json:"applyTo"`
}

// NewCanonicalRule returns a rule with default targets and globs.
func NewCanonicalRule() CanonicalRule {
	return CanonicalRule{Targets: []string{TargetAll}, Globs: GlobAll}
}

// TargetsTool reports whether the rule should be projected to t.
func (r CanonicalRule) TargetsTool(t Tool) bool {
	for _, target := range r.Targets {
		if target == TargetAll || target == string(t) {
			return true
		}
	}
	return false
}

// CursorRule is the frontmatter of a .cursor/rules/*.mdc file.
type CursorRule struct {
	Description string `json:"description,omitempty"`
	AlwaysApply bool   `json:"alwaysApply"`
	Globs       string `json:"globs,omitempty"`
}

// WindsurfTrigger is Windsurf's explicit activation field.
type WindsurfTrigger string

const (
	TriggerManual        WindsurfTrigger = "manual"
	TriggerAlwaysOn      WindsurfTrigger = "always_on"
	TriggerModelDecision WindsurfTrigger = "model_decision"
	TriggerGlob          WindsurfTrigger = "glob"
)

// DefaultTrigger is used when a windsurf rule or override omits its trigger.
const DefaultTrigger = TriggerModelDecision

// ParseTrigger accepts the four snake_case trigger values. Empty means default.
func ParseTrigger(s string) (WindsurfTrigger, bool) {
	switch WindsurfTrigger(s) {
	case "":
		return DefaultTrigger, true
	case TriggerManual, TriggerAlwaysOn, TriggerModelDecision, TriggerGlob:
		return WindsurfTrigger(s), true
	default:
		return "", false
	}
}

// WindsurfRule is the frontmatter of a .windsurf/rules/*.md file.
type WindsurfRule struct {
	Trigger     WindsurfTrigger `json:"trigger"`
	Description string          `json:"description,omitempty"`
	Globs       string          `json:"globs,omitempty"`
}

// CopilotRule is the frontmatter of a .github/instructions/*.instructions.md file.
type CopilotRule struct {
	Description string `json:"description,omitempty"`
	ApplyTo     string `json:"applyTo"`
}

// Fields returns the canonical header in its fixed output order.
func (r CanonicalRule) Fields() []parser.Field {
	targets := r.Targets
	if len(targets) == 0 {
		targets = []string{TargetAll}
	}
	fields := []parser.Field{
		parser.List("targets", targets...),
		parser.String("description", r.Description),
		parser.String("globs", r.Globs),
	}
	if r.Cursor != nil {
		fields = append(fields, parser.Block("cursor",
			parser.Bool("alwaysApply", r.Cursor.AlwaysApply),
			parser.String("globs", r.Cursor.Globs),
		))
	}
	if r.Windsurf != nil {
		fields = append(fields, parser.Block("windsurf",
			parser.String("trigger", string(r.Windsurf.Trigger)),
			parser.String("globs", r.Windsurf.Globs),
		))
	}
	if r.Copilot != nil {
		fields = append(fields, parser.Block("copilot",
			parser.String("applyTo", r.Copilot.ApplyTo),
		))
	}
	return fields
}

// Fields omits empty description and globs the way Cursor writes them.
func (r CursorRule) Fields() []parser.Field {
	var fields []parser.Field
	if r.Description != "" {
		fields = append(fields, parser.String("description", r.Description))
	}
	fields = append(fields, parser.Bool("alwaysApply", r.AlwaysApply))
	if r.Globs != "" {
		fields = append(fields, parser.String("globs", r.Globs))
	}
	return fields
}

func (r WindsurfRule) Fields() []parser.Field {
	trigger := r.Trigger
	if trigger == "" {
		trigger = DefaultTrigger
	}
	fields := []parser.Field{parser.String("trigger", string(trigger))}
	if r.Description != "" {
		fields = append(fields, parser.String("description", r.Description))
	}
	if r.Globs != "" {
		fields = append(fields, parser.String("globs", r.Globs))
	}
	return fields
}

func (r CopilotRule) Fields() []parser.Field {
	var fields []parser.Field
	if r.Description != "" {
		fields = append(fields, parser.String("description", r.Description))
	}
	applyTo := r.ApplyTo
	if applyTo == "" {
		applyTo = GlobAllDoubleStar
	}
	return append(fields, parser.String("applyTo", applyTo))
}
