package config

const (
	defaultDataDir  = "~/.local/share/moshpit/data"
	defaultCacheDir = "~/.cache/moshpit"
	defaultLogDir   = "~/.local/share/moshpit/logs"

	defaultLastFMBaseURL      = "https://ws.audioscrobbler.com/2.0/"
	defaultSpotifyBaseURL     = "https://api.spotify.com/v1"
	defaultSpotifyAccountsURL = "https://accounts.spotify.com/api/token"
	defaultSpotifyWebURL      = "https://open.spotify.com"
	defaultMusicBrainzBaseURL = "https://musicbrainz.org/ws/2"
	defaultMusicBrainzUA      = "moshpit/1.0 (https://github.com/emveep/moshpit)"
	defaultSetlistFMBaseURL   = "https://api.setlist.fm/rest/1.0"
	defaultGeniusBaseURL      = "https://api.genius.com"
	defaultGeniusWebURL       = "https://genius.com"
	defaultConcertsMetalURL   = "https://en.concerts-metal.com"
	defaultMetallumURL        = "https://www.metal-archives.com"

	defaultRequestDelayMS = 1000
	defaultMaxRetries     = 3
	defaultTimeoutSeconds = 30

	defaultMinSupportLineups = 4
	defaultMaxRuleLength     = 5
	defaultMinLift           = 1.0

	defaultPushMinListeners    = 10_000
	defaultPushOutlierQuantile = 0.05
	defaultPushTopArtists      = 35

	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		LastFM: LastFM{
			BaseURL: defaultLastFMBaseURL,
		},
		Spotify: Spotify{
			BaseURL:     defaultSpotifyBaseURL,
			AccountsURL: defaultSpotifyAccountsURL,
			WebURL:      defaultSpotifyWebURL,
		},
		MusicBrainz: MusicBrainz{
			BaseURL:   defaultMusicBrainzBaseURL,
			UserAgent: defaultMusicBrainzUA,
		},
		SetlistFM: SetlistFM{
			BaseURL: defaultSetlistFMBaseURL,
		},
		Genius: Genius{
			BaseURL: defaultGeniusBaseURL,
			WebURL:  defaultGeniusWebURL,
		},
		ConcertsMetal: ConcertsMetal{
			BaseURL: defaultConcertsMetalURL,
		},
		Metallum: Metallum{
			BaseURL: defaultMetallumURL,
		},
		Scrape: Scrape{
			RequestDelayMS: defaultRequestDelayMS,
			MaxRetries:     defaultMaxRetries,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Mining: Mining{
			MinSupportLineups: defaultMinSupportLineups,
			MaxRuleLength:     defaultMaxRuleLength,
			MinLift:           defaultMinLift,
		},
		Pushedness: Pushedness{
			MinListeners:    defaultPushMinListeners,
			OutlierQuantile: defaultPushOutlierQuantile,
			TopArtists:      defaultPushTopArtists,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
