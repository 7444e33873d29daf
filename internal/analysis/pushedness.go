package analysis

import (
	"sort"

	"moshpit/internal/config"
	"moshpit/internal/dataset"
)

// GenrePushedness summarises how hard one genre's artists are pushed by the
// platform relative to their organic following.
type GenrePushedness struct {
	Genre            string                  `json:"genre"`
	Artists          int                     `json:"artists"`
	MedianFollowers  float64                 `json:"median_followers"`
	MedianListeners  float64                 `json:"median_listeners"`
	MedianPushedness float64                 `json:"median_pushedness"`
	MostPushed       dataset.ArtistProfile   `json:"most_pushed"`
	LeastPushed      dataset.ArtistProfile   `json:"least_pushed"`
	Profiles         []dataset.ArtistProfile `json:"profiles,omitempty"`
}

// ComparePushedness computes pushedness (monthly listeners / followers) per
// artist, drops artists missing either number or below the listener floor,
// trims pushedness outliers at both quantile tails, and returns genre medians
// sorted most pushed first.
func ComparePushedness(profiles []dataset.ArtistProfile, opts config.Pushedness) ([]GenrePushedness, error) {
	var kept []dataset.ArtistProfile
	for _, profile := range profiles {
		if profile.SpotifyFollowers <= 0 || profile.SpotifyListeners <= 0 {
			continue
		}
		if profile.SpotifyListeners <= int64(opts.MinListeners) {
			continue
		}
		profile.Pushedness = float64(profile.SpotifyListeners) / float64(profile.SpotifyFollowers)
		kept = append(kept, profile)
	}
	if len(kept) < 2 {
		return nil, ErrNotEnoughData
	}

	pushedness := make([]float64, len(kept))
	for i, profile := range kept {
		pushedness[i] = profile.Pushedness
	}
	lower := Quantile(pushedness, opts.OutlierQuantile)
	upper := Quantile(pushedness, 1-opts.OutlierQuantile)

	byGenre := make(map[string][]dataset.ArtistProfile)
	for _, profile := range kept {
		if profile.Pushedness < lower || profile.Pushedness > upper {
			continue
		}
		byGenre[profile.Genre] = append(byGenre[profile.Genre], profile)
	}
	if len(byGenre) == 0 {
		return nil, ErrNotEnoughData
	}

	var genres []GenrePushedness
	for genre, members := range byGenre {
		followers := make([]float64, len(members))
		listeners := make([]float64, len(members))
		scores := make([]float64, len(members))
		most, least := members[0], members[0]
		for i, member := range members {
			followers[i] = float64(member.SpotifyFollowers)
			listeners[i] = float64(member.SpotifyListeners)
			scores[i] = member.Pushedness
			if member.Pushedness > most.Pushedness {
				most = member
			}
			if member.Pushedness < least.Pushedness {
				least = member
			}
		}
		genres = append(genres, GenrePushedness{
			Genre:            genre,
			Artists:          len(members),
			MedianFollowers:  Median(followers),
			MedianListeners:  Median(listeners),
			MedianPushedness: Median(scores),
			MostPushed:       most,
			LeastPushed:      least,
			Profiles:         members,
		})
	}
	sort.Slice(genres, func(i, j int) bool {
		if genres[i].MedianPushedness != genres[j].MedianPushedness {
			return genres[i].MedianPushedness > genres[j].MedianPushedness
		}
		return genres[i].Genre < genres[j].Genre
	})
	return genres, nil
}
