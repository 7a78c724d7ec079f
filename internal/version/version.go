// Package version exposes build metadata set via -ldflags.
package version

var (
	// Version is the release version, e.g. "v0.3.1".
	Version = "dev"
	// Commit is the git commit hash of the build.
	Commit = "unknown"
)
