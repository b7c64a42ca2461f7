package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantHeader string
		wantBody   string
		wantErr    string
	}{
		{
			name:       "basic",
			content:    "---\ndescription: Test rule\nalwaysApply: true\n---\n\n# Test Content\n\nThis is the body.\n",
			wantHeader: "description: Test rule\nalwaysApply: true",
			wantBody:   "# Test Content\n\nThis is the body.\n",
		},
		{
			name:       "leading whitespace is ignored",
			content:    "\n\n  ---\ntrigger: manual\n---\nbody",
			wantHeader: "trigger: manual",
			wantBody:   "body",
		},
		{
			name:       "empty header",
			content:    "---\n---\n\n# Title\n",
			wantHeader: "",
			wantBody:   "# Title\n",
		},
		{
			name:       "no body",
			content:    "---\na: b\n---",
			wantHeader: "a: b",
			wantBody:   "",
		},
		{
			name:    "no opening delimiter",
			content: "# Just markdown\n\nNo frontmatter",
			wantErr: "missing opening delimiter",
		},
		{
			name:    "no closing delimiter",
			content: "---\ndescription: Test\n\nNo closing delimiter",
			wantErr: "missing closing delimiter",
		},
		{
			name:    "delimiter must be the whole line",
			content: "---\na: b\n----\nbody",
			wantErr: "missing closing delimiter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body, err := Split(tt.content)
			if tt.wantErr != "" {
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("Split() error = %v, want *ParseError", err)
				}
				if pe.Reason != tt.wantErr {
					t.Fatalf("Split() reason = %q, want %q", pe.Reason, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split() unexpected error: %v", err)
			}
			if header != tt.wantHeader {
				t.Errorf("header = %q, want %q", header, tt.wantHeader)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParseErrorCarriesFileAndLine(t *testing.T) {
	_, _, err := Parse("broken.mdc", "---\ndescription: ok\nthis is not a pair\n---\n")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.File != "broken.mdc" {
		t.Errorf("File = %q, want broken.mdc", pe.File)
	}
	if pe.Line != 3 {
		t.Errorf("Line = %d, want 3", pe.Line)
	}
	if !strings.Contains(err.Error(), "broken.mdc") || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error message missing context: %v", err)
	}
}

func TestSerialize(t *testing.T) {
	fields := []Field{
		List("targets", "*"),
		String("description", "Python rules"),
		String("globs", "**/*.py"),
		Block("cursor",
			Bool("alwaysApply", false),
			String("globs", "**/*.py"),
		),
	}
	got := Serialize(fields, "# Python\n\nUse type hints.\n\n\n")
	want := `---
targets:
  - "*"
description: Python rules
globs: "**/*.py"
cursor:
  alwaysApply: false
  globs: "**/*.py"
---

# Python

Use type hints.
`
	if got != want {
		t.Fatalf("Serialize() =\n%s\nwant\n%s", got, want)
	}
}

func TestSerializeEmptyBody(t *testing.T) {
	got := Serialize([]Field{String("applyTo", "**")}, "")
	if got != "---\napplyTo: \"**\"\n---\n" {
		t.Fatalf("Serialize() = %q", got)
	}
	if strings.HasSuffix(got, "\n\n") {
		t.Fatalf("output must end with exactly one newline: %q", got)
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	fields := []Field{
		List("targets", "cursor", "windsurf"),
		String("description", `Say "hi": carefully # not a comment`),
		String("empty", ""),
		String("multi", "line one\nline two"),
		String("spaced", "  padded  "),
		String("truthy", "true"),
		Bool("flag", true),
		Block("copilot", String("applyTo", "src/**/*.ts,test/**/*.ts")),
	}
	body := "# Title\n\nBody text.\n"

	h, gotBody, err := Parse("x.md", Serialize(fields, body))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if gotBody != body {
		t.Errorf("body = %q, want %q", gotBody, body)
	}

	wantStrings := map[string]string{
		"targets":         "cursor,windsurf",
		"description":     `Say "hi": carefully # not a comment`,
		"empty":           "",
		"multi":           "line one\nline two",
		"spaced":          "  padded  ",
		"truthy":          "true",
		"copilot.applyTo": "src/**/*.ts,test/**/*.ts",
	}
	for key, want := range wantStrings {
		got, err := h.String(key)
		if err != nil {
			t.Fatalf("String(%q) error: %v", key, err)
		}
		if got != want {
			t.Errorf("String(%q) = %q, want %q", key, got, want)
		}
	}
	if !h.Bool("flag", false) {
		t.Errorf("flag should round-trip as true")
	}
	if !h.HasBlock("copilot") {
		t.Errorf("copilot should be a nested block")
	}
}
