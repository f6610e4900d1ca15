// Package source defines the domain models and interfaces for program discovery and stream resolution.
package source

// Locale describes the linguistic and regional context of a provider.
// Languages maps the language names used in the provider's subtitle
// metadata to short codes; DefaultLanguage is the code assumed for
// subtitles declared without a language. Countries lists the regions
// a geo-restricted program remains playable in.
type Locale struct {
	Languages       map[string]string
	DefaultLanguage string
	Countries       []string
}
