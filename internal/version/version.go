// Package version reports the build's version and commit.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"time"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/tablekit/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/tablekit/internal/version.Commit=abc123"
//
// Unset values are filled from VCS build info, then fall back to "dev".
var (
	Version = ""
	Commit  = ""
)

// Info describes the running build.
type Info struct {
	Version   string
	Commit    string
	Dirty     bool
	GoVersion string
}

var (
	resolveOnce sync.Once
	resolved    Info
)

// Get returns the build info, resolving it on first use.
func Get() Info {
	resolveOnce.Do(func() {
		resolved = resolve(Version, Commit, readSettings())
	})
	return resolved
}

func readSettings() map[string]string {
	settings := make(map[string]string)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return settings
	}
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	return settings
}

// resolve merges ldflags values with VCS build settings.
func resolve(version, commit string, settings map[string]string) Info {
	info := Info{Version: version, Commit: commit, GoVersion: runtime.Version()}

	if info.Commit == "" {
		if rev := settings["vcs.revision"]; rev != "" {
			if len(rev) > 7 {
				rev = rev[:7]
			}
			info.Commit = rev
			info.Dirty = settings["vcs.modified"] == "true"
		}
	}
	if info.Version == "" {
		if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			info.Version = "dev-" + t.Format("20060102")
		}
	}

	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	return info
}

// ShortCommit returns the commit with a -dirty suffix for modified trees.
func (i Info) ShortCommit() string {
	if i.Dirty {
		return i.Commit + "-dirty"
	}
	return i.Commit
}

// String returns the full version string including commit
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s)", i.Version, i.ShortCommit())
}

// Full returns the full version string of the running build.
func Full() string {
	return Get().String()
}
