package buildinfo

import (
	"runtime"
	"runtime/debug"
	"testing"
)

func TestRead(t *testing.T) {
	full := func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			GoVersion: "go1.23.4",
			Main:      debug.Module{Path: "github.com/aidanlsb/agentsync", Version: "v1.2.3"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.time", Value: "2026-02-14T17:00:00Z"},
				{Key: "vcs.modified", Value: "true"},
				{Key: "GOOS", Value: "windows"},
				{Key: "GOARCH", Value: "amd64"},
			},
		}, true
	}
	missing := func() (*debug.BuildInfo, bool) { return nil, false }

	tests := []struct {
		name    string
		read    Reader
		ldflags [3]string
		want    Info
	}{
		{
			name: "build info",
			read: full,
			want: Info{
				Version: "v1.2.3", ModulePath: "github.com/aidanlsb/agentsync",
				Commit: "abc123", CommitTime: "2026-02-14T17:00:00Z", Modified: true,
				GoVersion: "go1.23.4", GOOS: "windows", GOARCH: "amd64",
			},
		},
		{
			name: "no build info",
			read: missing,
			want: Info{
				Version: "devel", ModulePath: ModulePath,
				GoVersion: runtime.Version(), GOOS: runtime.GOOS, GOARCH: runtime.GOARCH,
			},
		},
		{
			name:    "ldflags fill the gaps",
			read:    missing,
			ldflags: [3]string{"v2.0.0", "deadbeef", "2026-03-01"},
			want: Info{
				Version: "v2.0.0", ModulePath: ModulePath,
				Commit: "deadbeef", CommitTime: "2026-03-01",
				GoVersion: runtime.Version(), GOOS: runtime.GOOS, GOARCH: runtime.GOARCH,
			},
		},
		{
			name:    "build info wins over ldflags",
			read:    full,
			ldflags: [3]string{"v9.9.9", "ffff", "2020-01-01"},
			want: Info{
				Version: "v1.2.3", ModulePath: "github.com/aidanlsb/agentsync",
				Commit: "abc123", CommitTime: "2026-02-14T17:00:00Z", Modified: true,
				GoVersion: "go1.23.4", GOOS: "windows", GOARCH: "amd64",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prev := [3]string{Version, Commit, Date}
			Version, Commit, Date = tc.ldflags[0], tc.ldflags[1], tc.ldflags[2]
			t.Cleanup(func() { Version, Commit, Date = prev[0], prev[1], prev[2] })

			if got := Read(tc.read); got != tc.want {
				t.Errorf("Read() =\n%+v\nwant\n%+v", got, tc.want)
			}
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	for in, want := range map[string]string{"": "devel", "(devel)": "devel", "v0.3.1": "v0.3.1"} {
		if got := normalizeVersion(in); got != want {
			t.Errorf("normalizeVersion(%q) = %q, want %q", in, got, want)
		}
	}
}
