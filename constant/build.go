// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Build metadata, overridden at release time with
// -ldflags "-X github.com/gense-cli/gense/constant.Revision=...".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
