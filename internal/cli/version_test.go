package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aidanlsb/agentsync/internal/buildinfo"
)

func stubBuildInfo(t *testing.T) {
	t.Helper()
	prev := readBuildInfo
	t.Cleanup(func() { readBuildInfo = prev })
	readBuildInfo = func() buildinfo.Info {
		return buildinfo.Info{
			Version:    "v1.2.3",
			ModulePath: buildinfo.ModulePath,
			Commit:     "deadbeef",
			Modified:   true,
			GoVersion:  "go1.23.4",
			GOOS:       "darwin",
			GOARCH:     "arm64",
		}
	}
}

func TestVersionCommandJSONOutput(t *testing.T) {
	stubBuildInfo(t)

	out, err := runCLI(t, t.TempDir(), "--json", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}

	var resp struct {
		OK   bool        `json:"ok"`
		Data versionInfo `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	if !resp.OK {
		t.Fatalf("expected ok=true; out=%s", out)
	}
	if resp.Data.Version != "v1.2.3" || resp.Data.Commit != "deadbeef" {
		t.Fatalf("data = %+v", resp.Data)
	}
	if resp.Data.GOOS != "darwin" || resp.Data.GOARCH != "arm64" {
		t.Fatalf("platform = %s/%s, want darwin/arm64", resp.Data.GOOS, resp.Data.GOARCH)
	}
	if strings.Join(resp.Data.Tools, ",") != "cursor,windsurf,copilot" {
		t.Fatalf("tools = %v", resp.Data.Tools)
	}
}

func TestVersionCommandText(t *testing.T) {
	stubBuildInfo(t)

	out, err := runCLI(t, t.TempDir(), "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	for _, want := range []string{"v1.2.3", "deadbeef (modified)", "darwin/arm64", "cursor, windsurf, copilot"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
