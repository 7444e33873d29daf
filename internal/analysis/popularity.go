package analysis

import (
	"sort"

	"moshpit/internal/dataset"
)

// GenrePopularity compares where one genre's artists stand on Last.fm versus
// Spotify.
type GenrePopularity struct {
	Genre                   string                  `json:"genre"`
	Artists                 int                     `json:"artists"`
	MedianLastFMListeners   float64                 `json:"median_lastfm_listeners"`
	MedianSpotifyFollowers  float64                 `json:"median_spotify_followers"`
	MedianSpotifyPopularity float64                 `json:"median_spotify_popularity"`
	Profiles                []dataset.ArtistProfile `json:"profiles,omitempty"`
}

// ComparePopularity groups artist profiles by genre and medians their
// platform numbers. Artists missing a platform number are dropped; a missing
// count and a zero count are indistinguishable in the source data.
func ComparePopularity(profiles []dataset.ArtistProfile) ([]GenrePopularity, error) {
	byGenre := make(map[string][]dataset.ArtistProfile)
	for _, profile := range profiles {
		if profile.LastFMListeners <= 0 || profile.SpotifyFollowers <= 0 {
			continue
		}
		byGenre[profile.Genre] = append(byGenre[profile.Genre], profile)
	}
	if len(byGenre) == 0 {
		return nil, ErrNotEnoughData
	}

	var genres []GenrePopularity
	for genre, members := range byGenre {
		listeners := make([]float64, len(members))
		followers := make([]float64, len(members))
		popularity := make([]float64, len(members))
		for i, member := range members {
			listeners[i] = float64(member.LastFMListeners)
			followers[i] = float64(member.SpotifyFollowers)
			popularity[i] = float64(member.SpotifyPopularity)
		}
		genres = append(genres, GenrePopularity{
			Genre:                   genre,
			Artists:                 len(members),
			MedianLastFMListeners:   Median(listeners),
			MedianSpotifyFollowers:  Median(followers),
			MedianSpotifyPopularity: Median(popularity),
			Profiles:                members,
		})
	}
	sort.Slice(genres, func(i, j int) bool {
		if genres[i].MedianLastFMListeners != genres[j].MedianLastFMListeners {
			return genres[i].MedianLastFMListeners > genres[j].MedianLastFMListeners
		}
		return genres[i].Genre < genres[j].Genre
	})
	return genres, nil
}

// FollowerListenerRow is one artist's followers-versus-listeners data point.
type FollowerListenerRow struct {
	Artist     string  `json:"artist"`
	Followers  int64   `json:"followers"`
	Listeners  int64   `json:"listeners"`
	Pushedness float64 `json:"pushedness"`
}

// CompareFollowersListeners builds scatter rows for a named artist set (one
// festival's lineup, a favourites list). Artists missing either number are
// dropped; the result is sorted by listeners descending.
func CompareFollowersListeners(profiles []dataset.ArtistProfile) ([]FollowerListenerRow, error) {
	var rows []FollowerListenerRow
	for _, profile := range profiles {
		if profile.SpotifyFollowers <= 0 || profile.SpotifyListeners <= 0 {
			continue
		}
		rows = append(rows, FollowerListenerRow{
			Artist:     profile.Artist,
			Followers:  profile.SpotifyFollowers,
			Listeners:  profile.SpotifyListeners,
			Pushedness: float64(profile.SpotifyListeners) / float64(profile.SpotifyFollowers),
		})
	}
	if len(rows) == 0 {
		return nil, ErrNotEnoughData
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Listeners != rows[j].Listeners {
			return rows[i].Listeners > rows[j].Listeners
		}
		return rows[i].Artist < rows[j].Artist
	})
	return rows, nil
}
