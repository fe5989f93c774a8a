// Package misc holds program identity. It has no dependencies so every
// other package can import it without cycles.
package misc

import "runtime/debug"

// Overridden at build time:
//
//	go build -ldflags="-X stc/misc.version=1.2.3 -X stc/misc.gitHash=abcdef"
var (
	appName = "stc"
	version = "dev"
	gitHash = ""
)

// GetAppName returns the program name used for logs, reports and temp files.
func GetAppName() string {
	return appName
}

// GetVersion returns the stamped version, falling back to module build info.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

// GetGitHash returns the stamped commit hash, falling back to vcs metadata.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
