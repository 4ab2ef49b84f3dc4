// Package kestrel holds shared project-wide metadata for the kestrel CLI.
package kestrel

// Version is the current kestrel release.
const Version = "0.3.0"
