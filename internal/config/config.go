package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	CacheDir string `toml:"cache_dir"`
	LogDir   string `toml:"log_dir"`
}

// LastFM contains Last.fm API access configuration.
type LastFM struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// Spotify contains Spotify API access configuration.
type Spotify struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	BaseURL      string `toml:"base_url"`
	AccountsURL  string `toml:"accounts_url"`
	WebURL       string `toml:"web_url"`
}

// MusicBrainz contains MusicBrainz web service configuration.
type MusicBrainz struct {
	BaseURL   string `toml:"base_url"`
	UserAgent string `toml:"user_agent"`
}

// SetlistFM contains Setlist.fm API access configuration.
type SetlistFM struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// Genius contains Genius API access configuration.
type Genius struct {
	AccessToken string `toml:"access_token"`
	BaseURL     string `toml:"base_url"`
	WebURL      string `toml:"web_url"`
}

// ConcertsMetal contains concerts-metal.com scrape configuration.
type ConcertsMetal struct {
	BaseURL string `toml:"base_url"`
}

// Metallum contains Encyclopaedia Metallum scrape configuration.
type Metallum struct {
	BaseURL string `toml:"base_url"`
}

// Scrape contains pacing settings shared by every outbound request.
type Scrape struct {
	// RequestDelayMS is the pause before each uncached request. External
	// sources throttle aggressively (MusicBrainz documents 1 req/s).
	RequestDelayMS int `toml:"request_delay_ms"`
	MaxRetries     int `toml:"max_retries"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Mining contains default association-rule mining parameters.
type Mining struct {
	MinSupportLineups int     `toml:"min_support_lineups"`
	MaxRuleLength     int     `toml:"max_rule_length"`
	MinLift           float64 `toml:"min_lift"`
}

// Pushedness contains defaults for the Spotify pushedness analysis.
type Pushedness struct {
	MinListeners    int     `toml:"min_listeners"`
	OutlierQuantile float64 `toml:"outlier_quantile"`
	TopArtists      int     `toml:"top_artists"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for moshpit.
//
// Configuration sections by subsystem:
//   - Paths: data, cache, and log directories
//   - LastFM / Spotify / MusicBrainz / SetlistFM / Genius: API credentials
//   - ConcertsMetal / Metallum: scraped-site endpoints
//   - Scrape: request pacing, retries, timeouts
//   - Mining / Pushedness: analysis defaults
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	LastFM        LastFM        `toml:"lastfm"`
	Spotify       Spotify       `toml:"spotify"`
	MusicBrainz   MusicBrainz   `toml:"musicbrainz"`
	SetlistFM     SetlistFM     `toml:"setlistfm"`
	Genius        Genius        `toml:"genius"`
	ConcertsMetal ConcertsMetal `toml:"concerts_metal"`
	Metallum      Metallum      `toml:"metallum"`
	Scrape        Scrape        `toml:"scrape"`
	Mining        Mining        `toml:"mining"`
	Pushedness    Pushedness    `toml:"pushedness"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/moshpit/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return is the
// resolved path, the third whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("moshpit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data, cache, and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.CacheDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CacheDBPath returns the location of the HTTP response cache database.
func (c *Config) CacheDBPath() string {
	return filepath.Join(c.Paths.CacheDir, "responses.db")
}

// LockPath returns the lock file guarding the data directory.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, ".moshpit.lock")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
