// Package version reports how the langkit binary was built.
//
// Release builds stamp Version, CommitHash and BuildTime with -ldflags -X.
// Anything left unstamped is filled from the module build info that the Go
// toolchain embeds, so `go install` binaries still report their revision.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unset = "dev"

// Stamped via -ldflags "-X github.com/teranos/langkit/version.Version=...".
var (
	Version    = unset
	CommitHash = unset
	BuildTime  = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get merges the stamped variables with the embedded build info.
func Get() Info {
	info := Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.fill(bi)
	}
	return info
}

// fill copies module and VCS settings into fields still at their defaults.
func (i Info) fill(bi *debug.BuildInfo) Info {
	if i.Version == unset && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	dirty := false
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.CommitHash == unset {
				i.CommitHash = s.Value
			}
		case "vcs.time":
			if i.BuildTime == "unknown" {
				i.BuildTime = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && i.CommitHash != unset {
		i.CommitHash += "-dirty"
	}
	return i
}

func (i Info) String() string {
	return fmt.Sprintf("langkit %s (commit %s, built %s)", i.Version, i.Short(), i.BuildTime)
}

// Short is the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.CommitHash) > 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
