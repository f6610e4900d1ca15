// Package cache provides localized filesystem-based caching for transient program metadata and provider results.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/gense-cli/gense/filesystem"
	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/where"
	"github.com/spf13/viper"
)

const defaultTTL = 7 * 24 * time.Hour

// TTL returns the configured cache lifetime, falling back to a week when unset or unparsable.
func TTL() time.Duration {
	if s := viper.GetString(key.CacheTTL); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return defaultTTL
}

// GenerateKey generates a deterministic SHA-256 hash from a query and provider pair for use as a cache identifier.
func GenerateKey(query, provider string) string {
	sanitized := strings.ToLower(strings.ReplaceAll(query, " ", "")) + provider
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read attempts to retrieve and deserialize a cached object if it exists and has not exceeded its TTL.
func Read(cacheKey string, target interface{}) bool {
	fs := filesystem.API()
	path := filepath.Join(where.Cache(), cacheKey)

	info, err := fs.Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL() {
		return false
	}

	f, err := fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(target) == nil
}

// Write persists a serializable object to the cache using an atomic file swap to ensure data integrity.
func Write(cacheKey string, data interface{}) error {
	fs := filesystem.API()
	path := filepath.Join(where.Cache(), cacheKey)
	tmpPath := path + ".tmp"

	f, err := fs.Create(tmpPath)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		f.Close()
		return err
	}
	f.Close()

	return fs.Rename(tmpPath, path)
}

// CollectGarbage initializes an asynchronous background task to prune expired cache entries from the filesystem.
func CollectGarbage() {
	go func() {
		fs := filesystem.API()
		dir := where.Cache()
		ttl := TTL()

		entries, err := fs.ReadDir(dir)
		if err != nil {
			return
		}

		for _, entry := range entries {
			if entry.IsDir() || time.Since(entry.ModTime()) <= ttl {
				continue
			}
			_ = fs.Remove(filepath.Join(dir, entry.Name()))
		}
	}()
}
