// Package history provides the implementation for tracking and persisting watched-program state.
package history

import (
	"github.com/gense-cli/gense/filesystem"
	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/source"
	"github.com/gense-cli/gense/where"
	"github.com/metafates/gache"
	"github.com/spf13/viper"
)

// cacher provides an abstracted, disk-backed registry for watched-program records.
var cacher = gache.New[map[string]*SavedProgram](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of watched-program records from the persistent store.
func Get() (map[string]*SavedProgram, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedProgram), nil
	}
	return cached, nil
}

// Save persists a watched program, the format it was played with and the
// playback position in seconds. Saving the same program again overwrites
// the previous record, so callers refresh the position after playback.
func Save(program *source.Program, formatID string, position int64) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedProgram(program, formatID, position)
	saved[record.encode()] = record
	trim(saved)

	return cacher.Set(saved)
}

// Remove permanently deletes a specific watched-program record from the history registry.
func Remove(program *SavedProgram) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, program.encode())
	return cacher.Set(saved)
}

// trim evicts the oldest records until the registry fits the configured history size.
func trim(saved map[string]*SavedProgram) {
	size := viper.GetInt(key.HistorySize)
	if size <= 0 {
		return
	}

	for len(saved) > size {
		var (
			oldestKey string
			oldestAt  int64
		)
		for k, record := range saved {
			if oldestKey == "" || record.WatchedAt < oldestAt {
				oldestKey = k
				oldestAt = record.WatchedAt
			}
		}
		delete(saved, oldestKey)
	}
}
