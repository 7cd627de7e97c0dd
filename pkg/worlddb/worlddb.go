// Package worlddb holds application-wide build metadata.
package worlddb

var (
	// Version is the application version, set by build flags.
	Version = "v0.1.0"

	// Build is the build timestamp, set by build flags.
	Build = "n/a"
)
