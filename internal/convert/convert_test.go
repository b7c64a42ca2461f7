package convert

import (
	"reflect"
	"testing"

	"github.com/aidanlsb/agentsync/internal/model"
)

func TestIsUniversalGlob(t *testing.T) {
	for _, g := range []string{"", "**", "**/*", "  **/*  "} {
		if !IsUniversalGlob(g) {
			t.Errorf("IsUniversalGlob(%q) = false, want true", g)
		}
	}
	for _, g := range []string{"*", "**/*.py", "src/**"} {
		if IsUniversalGlob(g) {
			t.Errorf("IsUniversalGlob(%q) = true, want false", g)
		}
	}
}

func TestBuildOverrides(t *testing.T) {
	tests := []struct {
		name string
		in   model.Activation
		want Overrides
	}{
		{
			name: "always on",
			in:   model.AlwaysOn(),
			want: Overrides{
				Cursor:   model.CursorOverride{AlwaysApply: true},
				Windsurf: model.WindsurfOverride{Trigger: model.TriggerAlwaysOn},
				Copilot:  model.CopilotOverride{ApplyTo: "**"},
				Globs:    "**/*",
			},
		},
		{
			name: "manual",
			in:   model.Manual(),
			want: Overrides{
				Windsurf: model.WindsurfOverride{Trigger: model.TriggerManual},
				Copilot:  model.CopilotOverride{ApplyTo: "**"},
				Globs:    "**/*",
			},
		},
		{
			name: "intelligent",
			in:   model.Intelligent(),
			want: Overrides{
				Windsurf: model.WindsurfOverride{Trigger: model.TriggerModelDecision},
				Copilot:  model.CopilotOverride{ApplyTo: "**"},
				Globs:    "**/*",
			},
		},
		{
			name: "glob normalizes patterns",
			in:   model.Glob(" src/**/*.py ,  tests/**/*.py"),
			want: Overrides{
				Cursor:   model.CursorOverride{Globs: "src/**/*.py,tests/**/*.py"},
				Windsurf: model.WindsurfOverride{Trigger: model.TriggerGlob, Globs: "src/**/*.py,tests/**/*.py"},
				Copilot:  model.CopilotOverride{ApplyTo: "src/**/*.py,tests/**/*.py"},
				Globs:    "src/**/*.py,tests/**/*.py",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildOverrides(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("BuildOverrides(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInferCursor(t *testing.T) {
	tests := []struct {
		in   model.CursorRule
		want model.Activation
	}{
		{model.CursorRule{AlwaysApply: true, Globs: "*.go", Description: "x"}, model.AlwaysOn()},
		{model.CursorRule{Globs: "a.py, b.py", Description: "x"}, model.Glob("a.py,b.py")},
		{model.CursorRule{Description: "x"}, model.Intelligent()},
		{model.CursorRule{}, model.Manual()},
	}
	for _, tc := range tests {
		if got := InferCursor(tc.in); got != tc.want {
			t.Errorf("InferCursor(%+v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestInferWindsurf(t *testing.T) {
	tests := []struct {
		trigger model.WindsurfTrigger
		want    model.Activation
	}{
		{model.TriggerAlwaysOn, model.AlwaysOn()},
		{model.TriggerManual, model.Manual()},
		{model.TriggerModelDecision, model.Intelligent()},
		{model.TriggerGlob, model.Glob("**/*.go")},
	}
	for _, tc := range tests {
		got := InferWindsurf(model.WindsurfRule{Trigger: tc.trigger, Globs: "**/*.go"})
		if got != tc.want {
			t.Errorf("InferWindsurf(%s) = %v, want %v", tc.trigger, got, tc.want)
		}
	}
}

func TestUniversalGlobEquivalence(t *testing.T) {
	for _, g := range []string{"", "**", "**/*"} {
		if got := InferCopilot(model.CopilotRule{ApplyTo: g}); got != model.AlwaysOn() {
			t.Errorf("InferCopilot(applyTo=%q) = %v, want always_on", g, got)
		}
		r := model.CanonicalRule{Targets: []string{"*"}, Globs: g}
		if got := CanonicalToCursor(r).Globs; got != "" {
			t.Errorf("cursor globs for %q = %q, want empty", g, got)
		}
		if got := CanonicalToWindsurf(r); got.Globs != "" || got.Trigger != model.TriggerModelDecision {
			t.Errorf("windsurf for %q = %+v", g, got)
		}
		if got := CanonicalToCopilot(r).ApplyTo; got != "**" {
			t.Errorf("copilot applyTo for %q = %q, want **", g, got)
		}
	}
}

func TestAlwaysOnSuppressesDescriptionAndGlobs(t *testing.T) {
	r := CursorToCanonical(model.CursorRule{AlwaysApply: true, Description: "Always"})
	r.Globs = "**/*.py"

	if got := CanonicalToCursor(r); got != (model.CursorRule{AlwaysApply: true}) {
		t.Errorf("cursor = %+v, want bare alwaysApply", got)
	}
	if got := CanonicalToWindsurf(r); got != (model.WindsurfRule{Trigger: model.TriggerAlwaysOn}) {
		t.Errorf("windsurf = %+v, want bare always_on", got)
	}
	if got := CanonicalToCopilot(r); got.Description != "Always" || got.ApplyTo != "**" {
		t.Errorf("copilot = %+v, want description carried with ** applyTo", got)
	}
}

func TestWindsurfOverrideKeepsTrigger(t *testing.T) {
	r := WindsurfToCanonical(model.WindsurfRule{Trigger: model.TriggerGlob, Description: "Py", Globs: "src/**/*.py, tests/**/*.py"})
	if r.Globs != "src/**/*.py,tests/**/*.py" {
		t.Errorf("Globs = %q", r.Globs)
	}
	if r.Windsurf == nil || r.Windsurf.Trigger != model.TriggerGlob || r.Windsurf.Globs != "src/**/*.py,tests/**/*.py" {
		t.Errorf("Windsurf override = %+v", r.Windsurf)
	}
	if r.Cursor == nil || r.Cursor.AlwaysApply || r.Cursor.Globs != "src/**/*.py,tests/**/*.py" {
		t.Errorf("Cursor override = %+v", r.Cursor)
	}
	if !reflect.DeepEqual(r.Targets, []string{"*"}) {
		t.Errorf("Targets = %v", r.Targets)
	}
}

// Converting canonical -> tool -> canonical keeps the mode for every mode the
// tool can express.
func TestModeIdempotence(t *testing.T) {
	activations := []struct {
		act         model.Activation
		description string
	}{
		{model.AlwaysOn(), "always"},
		// Cursor distinguishes manual from intelligent by the description.
		{model.Manual(), ""},
		{model.Intelligent(), "pick me"},
		{model.Glob("**/*.py,docs/**"), "py"},
	}

	for _, a := range activations {
		canonical := NewRule(a.description, a.act)
		if got := InferCanonical(canonical); got != a.act {
			t.Fatalf("InferCanonical(NewRule(%v)) = %v", a.act, got)
		}

		t.Run("cursor/"+a.act.String(), func(t *testing.T) {
			back := CursorToCanonical(CanonicalToCursor(canonical))
			if got := InferCanonical(back); got != a.act {
				t.Errorf("cursor round trip: %v -> %v", a.act, got)
			}
		})
		t.Run("windsurf/"+a.act.String(), func(t *testing.T) {
			back := WindsurfToCanonical(CanonicalToWindsurf(canonical))
			if got := InferCanonical(back); got != a.act {
				t.Errorf("windsurf round trip: %v -> %v", a.act, got)
			}
		})
		if a.act.Mode == model.ModeManual || a.act.Mode == model.ModeIntelligent {
			continue
		}
		t.Run("copilot/"+a.act.String(), func(t *testing.T) {
			back := CopilotToCanonical(CanonicalToCopilot(canonical))
			if got := InferCanonical(back); got != a.act {
				t.Errorf("copilot round trip: %v -> %v", a.act, got)
			}
		})
	}
}

func TestCopilotLosesManualAndIntelligent(t *testing.T) {
	for _, act := range []model.Activation{model.Manual(), model.Intelligent()} {
		back := CopilotToCanonical(CanonicalToCopilot(NewRule("d", act)))
		if got := InferCanonical(back); got.Mode == model.ModeGlob {
			t.Errorf("copilot must not invent globs for %v, got %v", act, got)
		}
	}
}

func TestConcretePythonScenario(t *testing.T) {
	canonical := model.CanonicalRule{Targets: []string{"*"}, Description: "X", Globs: "**/*.py"}

	cursor := CanonicalToCursor(canonical)
	if cursor.AlwaysApply || cursor.Globs != "**/*.py" {
		t.Errorf("cursor = %+v", cursor)
	}
	windsurf := CanonicalToWindsurf(canonical)
	if windsurf.Trigger != model.TriggerGlob || windsurf.Globs != "**/*.py" {
		t.Errorf("windsurf = %+v", windsurf)
	}
	copilot := CanonicalToCopilot(canonical)
	if copilot.ApplyTo != "**/*.py" {
		t.Errorf("copilot = %+v", copilot)
	}

	for name, back := range map[string]model.CanonicalRule{
		"cursor":   CursorToCanonical(cursor),
		"windsurf": WindsurfToCanonical(windsurf),
		"copilot":  CopilotToCanonical(copilot),
	} {
		if back.Globs != "**/*.py" {
			t.Errorf("%s: globs = %q, want **/*.py", name, back.Globs)
		}
		if InferCanonical(back).Mode == model.ModeAlwaysOn {
			t.Errorf("%s: mode must not be always_on", name)
		}
	}
}
