// Package version holds the tool version and the serialization format
// version written into every serialized tree.
package version

import "fmt"

// Set at link time with -ldflags "-X github.com/ruby/ruby-sub004/internal/version.Version=...".
var (
	Version   = "0.4.0"
	BuildDate = "unknown"
	Commit    = "none"
)

// Serialization format version. Bumped whenever the byte layout changes.
const (
	Major = 0
	Minor = 4
	Patch = 0
)

// Format returns the serialization version as "major.minor.patch".
func Format() string {
	return fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)
}

// String describes the build for `rbparse version`.
func String() string {
	return fmt.Sprintf("rbparse %s (format %s, commit %s, built %s)", Version, Format(), Commit, BuildDate)
}
