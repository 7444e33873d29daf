package config

import "strings"

// normalize expands paths, trims credentials, and fills blanks from defaults.
func (c *Config) normalize() error {
	defaults := Default()

	c.Paths.DataDir = fallback(c.Paths.DataDir, defaults.Paths.DataDir)
	c.Paths.CacheDir = fallback(c.Paths.CacheDir, defaults.Paths.CacheDir)
	c.Paths.LogDir = fallback(c.Paths.LogDir, defaults.Paths.LogDir)

	for _, dir := range []*string{&c.Paths.DataDir, &c.Paths.CacheDir, &c.Paths.LogDir} {
		expanded, err := expandPath(*dir)
		if err != nil {
			return err
		}
		*dir = expanded
	}

	c.LastFM.APIKey = strings.TrimSpace(c.LastFM.APIKey)
	c.LastFM.BaseURL = fallback(c.LastFM.BaseURL, defaults.LastFM.BaseURL)

	c.Spotify.ClientID = strings.TrimSpace(c.Spotify.ClientID)
	c.Spotify.ClientSecret = strings.TrimSpace(c.Spotify.ClientSecret)
	c.Spotify.BaseURL = fallback(c.Spotify.BaseURL, defaults.Spotify.BaseURL)
	c.Spotify.AccountsURL = fallback(c.Spotify.AccountsURL, defaults.Spotify.AccountsURL)
	c.Spotify.WebURL = fallback(c.Spotify.WebURL, defaults.Spotify.WebURL)

	c.MusicBrainz.BaseURL = fallback(c.MusicBrainz.BaseURL, defaults.MusicBrainz.BaseURL)
	c.MusicBrainz.UserAgent = fallback(c.MusicBrainz.UserAgent, defaults.MusicBrainz.UserAgent)

	c.SetlistFM.APIKey = strings.TrimSpace(c.SetlistFM.APIKey)
	c.SetlistFM.BaseURL = fallback(c.SetlistFM.BaseURL, defaults.SetlistFM.BaseURL)

	c.Genius.AccessToken = strings.TrimSpace(c.Genius.AccessToken)
	c.Genius.BaseURL = fallback(c.Genius.BaseURL, defaults.Genius.BaseURL)
	c.Genius.WebURL = fallback(c.Genius.WebURL, defaults.Genius.WebURL)

	c.ConcertsMetal.BaseURL = fallback(c.ConcertsMetal.BaseURL, defaults.ConcertsMetal.BaseURL)
	c.Metallum.BaseURL = fallback(c.Metallum.BaseURL, defaults.Metallum.BaseURL)

	if c.Scrape.RequestDelayMS == 0 {
		c.Scrape.RequestDelayMS = defaults.Scrape.RequestDelayMS
	}
	if c.Scrape.MaxRetries == 0 {
		c.Scrape.MaxRetries = defaults.Scrape.MaxRetries
	}
	if c.Scrape.TimeoutSeconds == 0 {
		c.Scrape.TimeoutSeconds = defaults.Scrape.TimeoutSeconds
	}

	if c.Mining.MinSupportLineups == 0 {
		c.Mining.MinSupportLineups = defaults.Mining.MinSupportLineups
	}
	if c.Mining.MaxRuleLength == 0 {
		c.Mining.MaxRuleLength = defaults.Mining.MaxRuleLength
	}
	if c.Mining.MinLift == 0 {
		c.Mining.MinLift = defaults.Mining.MinLift
	}

	if c.Pushedness.MinListeners == 0 {
		c.Pushedness.MinListeners = defaults.Pushedness.MinListeners
	}
	if c.Pushedness.OutlierQuantile == 0 {
		c.Pushedness.OutlierQuantile = defaults.Pushedness.OutlierQuantile
	}
	if c.Pushedness.TopArtists == 0 {
		c.Pushedness.TopArtists = defaults.Pushedness.TopArtists
	}

	c.Logging.Level = fallback(c.Logging.Level, defaults.Logging.Level)
	c.Logging.Format = fallback(c.Logging.Format, defaults.Logging.Format)

	return nil
}

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return strings.TrimSpace(value)
}
