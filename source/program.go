// Package source defines the domain models and interfaces for program discovery and stream resolution.
package source

import "time"

// Program represents a single watchable catalog entry: an on-demand
// broadcast or a live channel.
type Program struct {
	// Provider-scoped identifier (e.g. a programcard ID or channel slug).
	ID string `json:"id"`
	// URL slug of the watch page.
	Slug string `json:"slug,omitempty"`
	// PageURL is the public watch page, when the catalog exposes one.
	PageURL string `json:"page_url,omitempty"`
	// Display title.
	Title string `json:"title"`
	// Short catalog description.
	Description string `json:"description,omitempty"`
	// Thumbnail image URL, when the catalog carries one.
	Thumbnail string `json:"thumbnail,omitempty"`
	// Total duration. Zero for live channels.
	Duration time.Duration `json:"duration,omitempty"`
	// Live marks a channel rather than an on-demand program.
	Live bool `json:"live,omitempty"`
	// Ordering index within the search result.
	Index uint16 `json:"index"`

	Source Source `json:"-"`
}

// String returns the display title of the program.
func (p *Program) String() string {
	return p.Title
}
