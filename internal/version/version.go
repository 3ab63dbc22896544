// Package version reports which build of the bot is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags "-X". Empty values fall back to the VCS
// stamp the Go toolchain embeds in the binary.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

const unknown = "unknown"

// Info describes a build.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
	Dirty     bool
}

// Get returns the running build's Info.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
}

// resolve prefers linker-set values and fills gaps from bi's vcs settings.
func resolve(bi *debug.BuildInfo) Info {
	info := Info{Version: Version, Commit: Commit, BuildTime: BuildTime}
	if bi != nil {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}
	if info.Commit == "" {
		info.Commit = unknown
	}
	if info.BuildTime == "" {
		info.BuildTime = unknown
	}
	return info
}

// String renders the running build for --version and the version command.
func String() string {
	return Get().String()
}

func (i Info) String() string {
	commit := i.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if i.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("escalate %s (commit: %s, built: %s)", i.Version, commit, i.BuildTime)
}
