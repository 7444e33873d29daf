// Package testsupport provides shared constructors for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"moshpit/internal/config"
	"moshpit/internal/webcache"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.LastFM.APIKey = "test"
	cfg.SetlistFM.APIKey = "test"
	cfg.Genius.AccessToken = "test"
	cfg.Spotify.ClientID = "test"
	cfg.Spotify.ClientSecret = "test"
	cfg.Scrape.RequestDelayMS = 1

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithLastFMKey sets the Last.fm API key on the test config.
func WithLastFMKey(key string) ConfigOption {
	return func(c *config.Config) {
		c.LastFM.APIKey = key
	}
}

// MustOpenCache opens a response cache in a temp directory and registers cleanup.
func MustOpenCache(t testing.TB) *webcache.Cache {
	t.Helper()

	cache, err := webcache.Open(filepath.Join(t.TempDir(), "responses.db"))
	if err != nil {
		t.Fatalf("webcache.Open: %v", err)
	}
	t.Cleanup(func() {
		cache.Close()
	})
	return cache
}

// MustOpenCacheAt opens a response cache at the given path and registers cleanup.
func MustOpenCacheAt(t testing.TB, path string) *webcache.Cache {
	t.Helper()

	cache, err := webcache.Open(path)
	if err != nil {
		t.Fatalf("webcache.Open: %v", err)
	}
	t.Cleanup(func() {
		cache.Close()
	})
	return cache
}
