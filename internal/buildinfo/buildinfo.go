// Package buildinfo reports which agentsync build is running.
package buildinfo

import (
	"runtime"
	"runtime/debug"
	"strings"
)

// Release builds set these with -ldflags "-X". They stay empty for go install
// and local builds, where the module's embedded build info is used instead.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// ModulePath is reported when the binary carries no build info.
const ModulePath = "github.com/aidanlsb/agentsync"

const develVersion = "devel"

// Info describes the running binary.
type Info struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

// Reader matches debug.ReadBuildInfo.
type Reader func() (*debug.BuildInfo, bool)

// Current reads the running binary's build info.
func Current() Info {
	return Read(debug.ReadBuildInfo)
}

// Read builds an Info from read, filling gaps from the ldflags variables and
// the runtime.
func Read(read Reader) Info {
	info := Info{
		Version:    develVersion,
		ModulePath: ModulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}

	if bi, ok := read(); ok && bi != nil {
		if bi.Main.Path != "" {
			info.ModulePath = bi.Main.Path
		}
		info.Version = normalizeVersion(bi.Main.Version)
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}
		if v := settings["GOOS"]; v != "" {
			info.GOOS = v
		}
		if v := settings["GOARCH"]; v != "" {
			info.GOARCH = v
		}
		info.Commit = settings["vcs.revision"]
		info.CommitTime = settings["vcs.time"]
		info.Modified = strings.EqualFold(settings["vcs.modified"], "true")
	}

	// ldflags only fill what the build info left empty.
	if info.Version == develVersion && Version != "" {
		info.Version = normalizeVersion(Version)
	}
	if info.Commit == "" {
		info.Commit = Commit
	}
	if info.CommitTime == "" {
		info.CommitTime = Date
	}
	return info
}

func normalizeVersion(v string) string {
	if v == "" || v == "(devel)" {
		return develVersion
	}
	return v
}
