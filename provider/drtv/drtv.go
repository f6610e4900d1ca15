// Package drtv implements the built-in provider for DR TV, the Danish
// Broadcasting Corporation's catch-up service.
package drtv

import (
	"github.com/gense-cli/gense/source"
)

const (
	// ID is the canonical provider identifier.
	ID = "drtv"
	// Name is the display name of the provider.
	Name = "DR TV"
)

// DRTV talks to the mu-online API. The zero value is usable; New exists
// for symmetry with scripted providers.
type DRTV struct{}

// New creates the DR TV source.
func New() *DRTV {
	return &DRTV{}
}

// Name returns the provider display name.
func (d *DRTV) Name() string {
	return Name
}

// ID returns the provider identifier.
func (d *DRTV) ID() string {
	return ID
}

// Locale returns the Danish language table and the regions DR is
// permitted to serve.
func (d *DRTV) Locale() source.Locale {
	return source.Locale{
		Languages:       map[string]string{"Danish": "da"},
		DefaultLanguage: "da",
		Countries:       []string{"DK", "FO", "GL"},
	}
}
