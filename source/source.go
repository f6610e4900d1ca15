// Package source defines the domain models and interfaces for program discovery and stream resolution.
package source

// Source defines the required capabilities for a catch-up TV provider.
type Source interface {
	// Name returns the human-readable name of the provider.
	Name() string

	// ID returns the unique identifier of the source.
	ID() string

	// Search executes a query against the provider catalog to discover matching programs.
	Search(query string) ([]*Program, error)

	// AssetsOf retrieves the raw asset descriptions for a specific program.
	// Assets are the provider's own description of the program's media
	// resources; the resolver package turns them into playable formats.
	AssetsOf(program *Program) ([]*Asset, error)

	// ChannelsOf retrieves the provider's live channels. Providers
	// without a live offering return an empty list.
	ChannelsOf() ([]*Program, error)

	// Locale describes the provider's language table and region set.
	Locale() Locale
}
