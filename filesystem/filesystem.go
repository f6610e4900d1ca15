// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// Watch history, remembered queries, logs, installed provider scripts and the
// resolver cache all go through this layer, which utilizes the afero library to
// allow seamless switching between OS-level and in-memory backends.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs installs a fresh, volatile in-memory backend.
// Each call discards whatever the previous in-memory backend held.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}
