// Package version reports which build of xfer is running. Release builds
// stamp the variables below with -ldflags "-X ...". Plain `go build` and
// `go install` leave them unset, so the VCS stamp Go embeds is used instead.
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// String is the human form printed by `xfer --version`.
func String() string {
	commit, built := stamp()
	return fmt.Sprintf("xfer %s (commit: %s, built: %s)", Version, commit, built)
}

// UserAgent identifies this build in audit provenance, e.g. "xfer/dev+0123456".
func UserAgent() string {
	commit, _ := stamp()
	return "xfer/" + Version + "+" + commit
}

func stamp() (commit, built string) {
	commit, built = Commit, BuildTime
	if commit == "" || built == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				switch {
				case s.Key == "vcs.revision" && commit == "":
					commit = s.Value
				case s.Key == "vcs.time" && built == "":
					built = s.Value
				}
			}
		}
	}
	if commit == "" {
		commit = "unknown"
	}
	if built == "" {
		built = "unknown"
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return commit, built
}
