// Package misc keeps program identification helpers in one place so that
// logging, reporting and the CLI surface agree on what the program is called.
package misc

import (
	"runtime/debug"
)

const appName = "cssmod"

// GetAppName returns short program name used for logs, reports and temp files.
func GetAppName() string {
	return appName
}

// GetVersion returns module version as recorded by the build system.
func GetVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || len(bi.Main.Version) == 0 {
		return "unknown"
	}
	return bi.Main.Version
}

// GetGitHash returns VCS revision the binary was built from, if stamped.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
}
