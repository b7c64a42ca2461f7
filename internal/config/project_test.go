package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/aidanlsb/agentsync/internal/model"
)

func TestParseProject(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantTools []string
		wantDirs  []string
		wantErr   string
	}{
		{
			name:      "defaults",
			json:      `{}`,
			wantTools: []string{"cursor", "windsurf", "copilot"},
			wantDirs:  []string{"."},
		},
		{
			name:      "explicit",
			json:      `{"tools": ["cursor"], "baseDirs": ["frontend", "/srv/api"]}`,
			wantTools: []string{"cursor"},
			wantDirs:  []string{"frontend", "/srv/api"},
		},
		{
			name:    "not json",
			json:    `{tools:`,
			wantErr: "invalid config",
		},
		{
			name:    "wrong shape",
			json:    `{"tools": "cursor"}`,
			wantErr: "invalid config",
		},
		{
			name:    "unknown tool",
			json:    `{"tools": ["cursr"]}`,
			wantErr: "Did you mean 'cursor'?",
		},
		{
			name:    "empty baseDirs",
			json:    `{"baseDirs": []}`,
			wantErr: "at least one directory",
		},
		{
			name:    "traversal in baseDirs",
			json:    `{"baseDirs": ["../elsewhere"]}`,
			wantErr: "path traversal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseProject("agentsync.json", []byte(tt.json))
			if tt.wantErr != "" {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("error = %v, want *ValidationError", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %q, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(p.Tools, tt.wantTools) || !reflect.DeepEqual(p.BaseDirs, tt.wantDirs) {
				t.Fatalf("got %+v", p)
			}
		})
	}
}

func TestUnknownToolErrorIsReachable(t *testing.T) {
	_, err := ParseProject("agentsync.json", []byte(`{"tools": ["github-copilot"]}`))
	var ute *model.UnknownToolError
	if !errors.As(err, &ute) {
		t.Fatalf("error = %v, want *model.UnknownToolError", err)
	}
	if ute.Suggestion != "Did you mean 'copilot'?" {
		t.Errorf("Suggestion = %q", ute.Suggestion)
	}
}

func TestLoadProjectNotInitialized(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadProject(ProjectPath(dir)); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("LoadProject() error = %v, want ErrNotInitialized", err)
	}
	if _, err := FindProjectRoot(dir); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("FindProjectRoot() error = %v, want ErrNotInitialized", err)
	}
}

func TestSaveAndLoadProject(t *testing.T) {
	dir := t.TempDir()
	p := &Project{Tools: []string{"windsurf", "cursor", "windsurf"}, BaseDirs: []string{".", "web"}}
	if err := SaveProject(ProjectPath(dir), p); err != nil {
		t.Fatalf("SaveProject() error: %v", err)
	}

	root, err := FindProjectRoot(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, err := LoadProject(ProjectPath(root))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Fatalf("loaded %+v, want %+v", got, p)
	}

	tools, err := got.EnabledTools()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tools, []model.Tool{model.ToolWindsurf, model.ToolCursor}) {
		t.Errorf("EnabledTools() = %v", tools)
	}

	roots := got.Roots(root)
	if !reflect.DeepEqual(roots, []string{root, filepath.Join(root, "web")}) {
		t.Errorf("Roots() = %v", roots)
	}
}

func TestSaveProjectRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentsync.json")
	if err := SaveProject(path, &Project{Tools: []string{"vim"}, BaseDirs: []string{"."}}); err == nil {
		t.Fatal("expected an error for an unknown tool")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("invalid config must not be written")
	}
}

func TestLoadFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[ui]\naccent = \"39\"\ncode_theme = \"nord\"\n\n[log]\nlevel = \"info\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.UI.Accent != "39" || cfg.UI.CodeTheme != "nord" || cfg.Log.Level != "info" {
		t.Fatalf("cfg = %+v", cfg)
	}

	if err := os.WriteFile(path, []byte("[ui\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadFromRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[ui]\naccnet = \"39\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFrom(path)
	if err == nil || !strings.Contains(err.Error(), "ui.accnet") {
		t.Fatalf("LoadFrom() error = %v, want unknown key ui.accnet", err)
	}
}

func TestDefaultPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(xdg, "agentsync", "config.toml"); got != want {
		t.Errorf("DefaultPath() with XDG_CONFIG_HOME = %q, want %q", got, want)
	}

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)
	dotConfig := filepath.Join(home, ".config", "agentsync", "config.toml")
	if err := os.MkdirAll(filepath.Dir(dotConfig), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dotConfig, []byte("[log]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, err := DefaultPath(); err != nil || got != dotConfig {
		t.Errorf("DefaultPath() = %q, %v; want %q", got, err, dotConfig)
	}
	cfg, err := Load()
	if err != nil || cfg.Log.Level != "debug" {
		t.Fatalf("Load() = %+v, %v", cfg, err)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != (Config{}) {
		t.Fatalf("Load() = %+v, want zero config", cfg)
	}
}
