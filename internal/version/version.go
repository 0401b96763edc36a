// Package version holds the build version.
package version

// Version is the current release version.
var Version = "1.0.0"
