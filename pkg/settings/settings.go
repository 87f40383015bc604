// Package settings holds build metadata and the per-invocation settings of
// the tmenu command.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "tmenu"

// VersionInformation is set at build time through ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo describes the running binary.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the settings of one invocation.
type Run struct {
	// LogLevel is a zap level; negative values enable debug entries.
	LogLevel int8
	LogFile  string
	NoColor  bool
	// Interactive is false when the menu is only rendered, never shown on a
	// terminal (snapshots).
	Interactive bool
}

// Defaults returns the settings used when no flag changes them.
func Defaults() *Run {
	return &Run{Interactive: true}
}

// Debug reports whether debug entries are logged.
func (r *Run) Debug() bool { return r.LogLevel < 0 }
