// Package version holds the build information reported by `retemplate version`.
package version

// Set at link time, e.g.
// -ldflags "-X github.com/arthur-debert/retemplate/internal/version.Version=v1.2.0"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
