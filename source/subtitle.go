// Package source defines the domain models and interfaces for program discovery and stream resolution.
package source

// Subtitle is a normalized subtitle track.
type Subtitle struct {
	// Short language code (e.g. "da"), or the provider's own name when
	// no mapping is known.
	Language string `json:"language"`
	URL      string `json:"url"`
	// File extension, derived from the declared MIME type.
	Ext string `json:"ext"`
}
