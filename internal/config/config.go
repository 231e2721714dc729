// Package config loads and validates .jsp/config.toml.
package config

import (
	"time"
)

// Environment variables that override file settings.
const (
	EnvManifestURL = "JSP_MANIFEST_URL"
	EnvLogLevel    = "JSP_LOG_LEVEL"
)

// Defaults applied to omitted fields.
const (
	DefaultTimeout     = 10 * time.Second
	DefaultRetries     = 2
	DefaultMaxBytes    = 1 << 20
	DefaultPackagesDir = "Packages/jsp"
	DefaultCacheDir    = "~/.cache/jsp"
	DefaultLogLevel    = "info"
	DefaultServeAddr   = "127.0.0.1:8089"
	DefaultJobs        = 4
)

// Config is the full config.toml document.
type Config struct {
	Manifest ManifestConfig `toml:"manifest"`
	Packages PackagesConfig `toml:"packages"`
	Cache    CacheConfig    `toml:"cache"`
	Log      LogConfig      `toml:"log"`
	Serve    ServeConfig    `toml:"serve"`
	Sync     SyncConfig     `toml:"sync"`
}

// ManifestConfig locates the remote package manifest.
type ManifestConfig struct {
	URL string `toml:"url"`
	// Timeout is a Go duration string such as "10s".
	Timeout  string `toml:"timeout"`
	Retries  *int   `toml:"retries"`
	MaxBytes int64  `toml:"max_bytes"`
}

// PackagesConfig locates installed packages.
type PackagesConfig struct {
	Dir string `toml:"dir"`
}

// CacheConfig locates the manifest cache. An empty Dir keeps the cache in memory.
type CacheConfig struct {
	Dir *string `toml:"dir"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// ServeConfig configures `jsp serve`.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// SyncConfig configures `jsp sync`.
type SyncConfig struct {
	Jobs int `toml:"jobs"`
}

// TimeoutDuration returns the parsed manifest timeout or DefaultTimeout.
// Validate guarantees the string parses.
func (m ManifestConfig) TimeoutDuration() time.Duration {
	if m.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(m.Timeout)
	if err != nil {
		return DefaultTimeout
	}
	return d
}

// RetryCount returns the configured retries or DefaultRetries.
func (m ManifestConfig) RetryCount() int {
	if m.Retries == nil {
		return DefaultRetries
	}
	return *m.Retries
}

// applyDefaults fills omitted fields.
func (c *Config) applyDefaults() {
	if c.Manifest.MaxBytes == 0 {
		c.Manifest.MaxBytes = DefaultMaxBytes
	}
	if c.Packages.Dir == "" {
		c.Packages.Dir = DefaultPackagesDir
	}
	if c.Cache.Dir == nil {
		dir := DefaultCacheDir
		c.Cache.Dir = &dir
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultServeAddr
	}
	if c.Sync.Jobs == 0 {
		c.Sync.Jobs = DefaultJobs
	}
}

// applyEnv overlays environment overrides. lookup is usually os.LookupEnv.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	if value, ok := lookup(EnvManifestURL); ok && value != "" {
		c.Manifest.URL = value
	}
	if value, ok := lookup(EnvLogLevel); ok && value != "" {
		c.Log.Level = value
	}
}
