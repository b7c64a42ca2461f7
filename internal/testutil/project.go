// Package testutil provides reusable builders and assertions for agentsync tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestProject represents a temporary project directory for testing.
type TestProject struct {
	Path   string
	t      *testing.T
	config string
	files  map[string]string
}

// NewTestProject creates a new test project builder.
// Call Build() to create the actual directory.
func NewTestProject(t *testing.T) *TestProject {
	t.Helper()
	return &TestProject{
		t:     t,
		files: make(map[string]string),
	}
}

// WithConfig sets the agentsync.json content.
func (p *TestProject) WithConfig(json string) *TestProject {
	p.config = json
	return p
}

// WithDefaultConfig writes the config "agentsync init" would write.
func (p *TestProject) WithDefaultConfig() *TestProject {
	return p.WithConfig(DefaultConfig())
}

// WithFile adds a file; the path is relative to the project root.
func (p *TestProject) WithFile(path, content string) *TestProject {
	p.files[path] = content
	return p
}

// WithRule adds a canonical rule file under .agentsync/rules.
func (p *TestProject) WithRule(name, content string) *TestProject {
	return p.WithFile(filepath.Join(".agentsync", "rules", name+".md"), content)
}

// Build creates the project directory and all configured files.
func (p *TestProject) Build() *TestProject {
	p.t.Helper()
	p.Path = p.t.TempDir()

	if p.config != "" {
		p.writeFile("agentsync.json", p.config)
	}
	for path, content := range p.files {
		p.writeFile(path, content)
	}
	return p
}

func (p *TestProject) writeFile(relPath, content string) {
	p.t.Helper()
	fullPath := filepath.Join(p.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		p.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		p.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// Write adds or replaces a file after Build.
func (p *TestProject) Write(relPath, content string) {
	p.t.Helper()
	p.writeFile(relPath, content)
}

// ReadFile reads a file relative to the project root.
func (p *TestProject) ReadFile(relPath string) string {
	p.t.Helper()
	fullPath := filepath.Join(p.Path, relPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		p.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the project.
func (p *TestProject) FileExists(relPath string) bool {
	p.t.Helper()
	_, err := os.Stat(filepath.Join(p.Path, relPath))
	return err == nil
}

// DefaultConfig returns the config written by init.
func DefaultConfig() string {
	return `{
  "tools": ["cursor", "copilot", "windsurf"],
  "baseDirs": ["."]
}
`
}

// PythonRule is a canonical glob rule used across tests.
func PythonRule() string {
	return `---
targets:
  - "*"
description: X
globs: "**/*.py"
---

# Python

Use type hints.
`
}
