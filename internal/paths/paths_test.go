package paths

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/security"
)

func TestRuleName(t *testing.T) {
	tests := []struct {
		tool    model.Tool
		file    string
		want    string
		wantErr bool
	}{
		{model.ToolCanonical, ".agentsync/rules/python-style.md", "python-style", false},
		{model.ToolCursor, "python-style.mdc", "python-style", false},
		{model.ToolWindsurf, "a.b.md", "a.b", false},
		{model.ToolCopilot, "python-style.instructions.md", "python-style", false},
		{model.ToolCopilot, "python-style.md", "", true},
		{model.ToolCursor, ".mdc", "", true},
		{model.ToolCopilot, ".instructions.md", "", true},
	}
	for _, tc := range tests {
		got, err := RuleName(tc.tool, tc.file)
		if (err != nil) != tc.wantErr {
			t.Fatalf("RuleName(%s, %q) error = %v, wantErr %v", tc.tool, tc.file, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("RuleName(%s, %q) = %q, want %q", tc.tool, tc.file, got, tc.want)
		}
	}
}

func TestRulePath(t *testing.T) {
	root := t.TempDir()

	got, err := RulePath(root, model.ToolCopilot, "python")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, ".github", "instructions", "python.instructions.md")
	if got != want {
		t.Fatalf("RulePath() = %q, want %q", got, want)
	}

	for _, bad := range []string{"../escape", "/abs", `..\win`} {
		if _, err := RulePath(root, model.ToolCursor, bad); !errors.Is(err, security.ErrPathTraversal) {
			t.Errorf("RulePath(%q) error = %v, want traversal", bad, err)
		}
	}
	if _, err := RulePath(root, model.ToolCursor, "a/b"); err == nil {
		t.Errorf("RulePath with a separator should fail")
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".github", "instructions")
	if err := os.MkdirAll(filepath.Join(dir, "nested.instructions.md"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.instructions.md", "a.instructions.md", "notes.md", ".a.instructions.md.tmp-1", ".hidden.instructions.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Discover(root, model.ToolCopilot)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.instructions.md"), filepath.Join(dir, "b.instructions.md")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Discover() = %v, want %v", got, want)
	}

	none, err := Discover(root, model.ToolWindsurf)
	if err != nil || len(none) != 0 {
		t.Fatalf("missing directory: got %v, %v", none, err)
	}
}

func TestValidateRuleName(t *testing.T) {
	valid := []string{"python", "python-style", "v2-rules", "a1"}
	invalid := []string{"", "Python", "python_style", "-a", "a-", "a--b", "a/b", `a\b`, "..", "a b"}
	for _, n := range valid {
		if err := ValidateRuleName(n); err != nil {
			t.Errorf("ValidateRuleName(%q) = %v, want nil", n, err)
		}
	}
	for _, n := range invalid {
		var ire *InvalidRuleNameError
		if err := ValidateRuleName(n); !errors.As(err, &ire) {
			t.Errorf("ValidateRuleName(%q) = %v, want *InvalidRuleNameError", n, err)
		}
	}
}
