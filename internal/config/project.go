package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/aidanlsb/agentsync/internal/atomicfile"
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/paths"
	"github.com/aidanlsb/agentsync/internal/security"
)

// ErrNotInitialized is returned when a project has no agentsync.json.
var ErrNotInitialized = errors.New("agentsync is not initialized in this directory (run 'agentsync init')")

// Project is the content of agentsync.json.
type Project struct {
	// Tools lists the enabled tool identifiers.
	Tools []string `json:"tools"`

	// BaseDirs lists project roots to sync, relative to the config file.
	BaseDirs []string `json:"baseDirs"`
}

// DefaultProject enables every tool for the config file's own directory.
func DefaultProject() *Project {
	return &Project{
		Tools:    model.ToolNames(),
		BaseDirs: []string{"."},
	}
}

// ValidationError reports an invalid agentsync.json.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

const projectSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "tools": {
      "type": "array",
      "items": {"type": "string"}
    },
    "baseDirs": {
      "type": "array",
      "items": {"type": "string"}
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func projectSchemaValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(projectSchema), &doc); err != nil {
			schemaErr = fmt.Errorf("schema unmarshal error: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("agentsync.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("schema compile error: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("agentsync.schema.json")
	})
	return compiledSchema, schemaErr
}

// ProjectPath returns the agentsync.json path under root.
func ProjectPath(root string) string {
	return filepath.Join(root, paths.ConfigFileName)
}

// FindProjectRoot returns dir if it contains agentsync.json.
func FindProjectRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(ProjectPath(abs)); err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotInitialized
		}
		return "", err
	}
	return abs, nil
}

// LoadProject reads and validates agentsync.json. Missing fields default.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseProject(path, data)
}

// ParseProject validates data as agentsync.json. path is used in errors.
func ParseProject(path string, data []byte) (*Project, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Path: path, Err: err}
	}
	sch, err := projectSchemaValidator()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, &ValidationError{Path: path, Err: err}
	}

	var raw struct {
		Tools    *[]string `json:"tools"`
		BaseDirs *[]string `json:"baseDirs"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, &ValidationError{Path: path, Err: err}
	}

	p := DefaultProject()
	if raw.Tools != nil {
		p.Tools = *raw.Tools
	}
	if raw.BaseDirs != nil {
		p.BaseDirs = *raw.BaseDirs
	}
	if err := p.Validate(); err != nil {
		return nil, &ValidationError{Path: path, Err: err}
	}
	return p, nil
}

// Validate checks tool names and base directories.
func (p *Project) Validate() error {
	if _, err := model.ParseTools(p.Tools); err != nil {
		return err
	}
	return security.ValidateBaseDirs(p.BaseDirs)
}

// EnabledTools returns the configured tools in config order, without duplicates.
func (p *Project) EnabledTools() ([]model.Tool, error) {
	tools, err := model.ParseTools(p.Tools)
	if err != nil {
		return nil, err
	}
	seen := make(map[model.Tool]bool, len(tools))
	out := tools[:0]
	for _, t := range tools {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, nil
}

// Roots resolves BaseDirs against the directory holding agentsync.json.
func (p *Project) Roots(projectRoot string) []string {
	roots := make([]string, 0, len(p.BaseDirs))
	for _, d := range p.BaseDirs {
		d = strings.TrimSpace(d)
		if filepath.IsAbs(d) {
			roots = append(roots, filepath.Clean(d))
			continue
		}
		roots = append(roots, filepath.Join(projectRoot, filepath.FromSlash(d)))
	}
	return roots
}

// SaveProject writes p as indented JSON, atomically.
func SaveProject(path string, p *Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path, append(data, '\n'), 0o644)
}
