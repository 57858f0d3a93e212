// Package ccslim holds build information of the ccslim application.
package ccslim

var (
	// Version of the application, set with ldflags.
	Version = "v0.1.0"
	// Build timestamp, set with ldflags.
	Build = "n/a"
)
