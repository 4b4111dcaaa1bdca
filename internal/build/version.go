// Package build provides version and build information for twnotify.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

import "fmt"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// AppName is used as the notification application name and in the User-Agent.
const AppName = "twnotify"

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// UserAgent returns the User-Agent header sent with upstream API requests.
func UserAgent() string {
	return fmt.Sprintf("%s/%s", AppName, Version)
}
