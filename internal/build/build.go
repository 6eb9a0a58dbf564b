// Package build holds version information injected at release time.
package build

// Populated via -ldflags by the release pipeline.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
