package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// configFileName is looked up in the analyzed project's root directory.
const configFileName = ".lockscope.toml"

// Config holds project-level defaults read from .lockscope.toml. Flags
// always win over config values.
type Config struct {
	// CacheDir overrides the default cache directory.
	CacheDir string `toml:"cache_dir"`
	// CacheTTLHours is the cache entry lifetime; 0 disables expiry.
	CacheTTLHours int `toml:"cache_ttl_hours"`
	// LocationCap bounds locations printed per version in tree output.
	LocationCap int `toml:"location_cap"`
	// Node is the default Node.js version for engines checks.
	Node string `toml:"node"`
	// Addr is the default listen address for serve.
	Addr string `toml:"addr"`
}

// defaultConfig are the values used when no config file exists.
func defaultConfig() Config {
	return Config{
		CacheTTLHours: 24,
		Addr:          "127.0.0.1:8787",
	}
}

// loadConfig reads .lockscope.toml from dir, returning defaults when the
// file is absent. A present but unreadable file is an error so typos do not
// silently fall back.
func loadConfig(dir string) (Config, error) {
	cfg := defaultConfig()
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// cacheTTL converts the configured hours to a duration.
func (c Config) cacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}
