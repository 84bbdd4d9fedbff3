// Package cache provides file-based memoization of analysis results.
//
// Entries are JSON files named by the SHA-256 of their key, so arbitrary
// keys (lockfile paths, content digests) are safe to use. Freshness is
// judged by file modification time against a TTL; expired entries stay on
// disk until overwritten or cleared.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by Get when an entry exists but has exceeded its
// TTL. The stale data is still on disk; callers should recompute and Set.
var ErrExpired = errors.New("cache entry expired")

// Cache stores JSON-marshalable values in a directory. Operations are not
// goroutine-safe within one instance, but separate instances (and separate
// processes) can share a directory safely.
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// New creates a Cache rooted at dir with the given TTL. An empty dir
// selects ~/.cache/lockscope; a zero TTL disables expiry. The directory is
// created if missing.
func New(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "lockscope")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the entry time-to-live. Zero means entries never expire.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get looks up key and unmarshals a fresh entry into v. It reports
// (true, nil) on a hit, (false, nil) on a miss, and (false, ErrExpired)
// when the entry exists but is stale. Reads never touch modification times.
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.keyPath(c.prefix + key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set stores v under key, overwriting any previous entry and refreshing
// its TTL.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

// Namespace returns a view of the cache that prefixes every key, keeping
// different producers (analysis results, HTTP responses) from colliding.
// Namespaces share the parent's directory and TTL and can be chained.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{dir: c.dir, ttl: c.ttl, prefix: c.prefix + prefix}
}

// Clear removes every entry in the cache directory and reports how many
// files were deleted. Subdirectories are left alone.
func (c *Cache) Clear() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
