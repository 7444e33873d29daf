package dataset

import "time"

// LineupEntry is one artist on a festival bill.
type LineupEntry struct {
	Name  string `json:"name"`
	Genre string `json:"genre,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Festival is one festival edition and its lineup as scraped from
// concerts-metal.com. Name includes the edition year ("Wacken Open Air 2024").
type Festival struct {
	Name       string        `json:"name"`
	City       string        `json:"city,omitempty"`
	Country    string        `json:"country,omitempty"`
	Date       string        `json:"date,omitempty"`
	URL        string        `json:"url,omitempty"`
	HistoryURL string        `json:"history_url,omitempty"`
	NextURL    string        `json:"next_url,omitempty"`
	Artists    []LineupEntry `json:"artists"`
}

// LineupNames returns the artist names on the bill.
func (f Festival) LineupNames() []string {
	names := make([]string, 0, len(f.Artists))
	for _, artist := range f.Artists {
		names = append(names, artist.Name)
	}
	return names
}

// SimilarArtist is one similarity result from Last.fm or Metallum. Score is
// the platform's own scale: 0..1 for Last.fm match, an integer vote count for
// Metallum.
type SimilarArtist struct {
	Name    string  `json:"name"`
	MBID    string  `json:"mbid,omitempty"`
	Score   float64 `json:"score"`
	URL     string  `json:"url,omitempty"`
	Country string  `json:"country,omitempty"`
	Genre   string  `json:"genre,omitempty"`
}

// Setlist is one concert appearance from Setlist.fm. Tour is empty for
// one-off shows.
type Setlist struct {
	Artist    string    `json:"artist"`
	EventDate time.Time `json:"event_date"`
	Venue     string    `json:"venue,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	Tour      string    `json:"tour,omitempty"`
	SongCount int       `json:"song_count,omitempty"`
}

// Release is one studio album release.
type Release struct {
	Artist string    `json:"artist"`
	Title  string    `json:"title"`
	Date   time.Time `json:"date"`
}

// Song is one song with lyrics scraped from Genius.
type Song struct {
	Artist          string `json:"artist"`
	CreditedArtists string `json:"credited_artists,omitempty"`
	Title           string `json:"title"`
	LyricsURL       string `json:"lyrics_url,omitempty"`
	Lyrics          string `json:"lyrics,omitempty"`
}

// ArtistProfile collects per-artist platform numbers for the popularity and
// pushedness analyses. Zero counts mean the platform had no data.
type ArtistProfile struct {
	Artist            string  `json:"artist"`
	Genre             string  `json:"genre,omitempty"`
	GenreRank         int     `json:"genre_rank,omitempty"`
	LastFMListeners   int64   `json:"lastfm_listeners,omitempty"`
	SpotifyFollowers  int64   `json:"spotify_followers,omitempty"`
	SpotifyListeners  int64   `json:"spotify_listeners,omitempty"`
	SpotifyPopularity int     `json:"spotify_popularity,omitempty"`
	Pushedness        float64 `json:"pushedness,omitempty"`
}
