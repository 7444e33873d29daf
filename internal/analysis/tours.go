package analysis

import (
	"sort"
	"time"

	"moshpit/internal/dataset"
)

// TourSummary is one named tour reconstructed from setlist data.
type TourSummary struct {
	Artist    string    `json:"artist"`
	Tour      string    `json:"tour"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Shows     int       `json:"shows"`
	Countries int       `json:"countries"`
}

// SummariseTours groups setlists by artist and tour name and derives each
// tour's start and end dates. Shows without a tour name are one-offs and are
// ignored. Tours are sorted by start date, newest first.
func SummariseTours(setlists []dataset.Setlist) ([]TourSummary, error) {
	type key struct{ artist, tour string }
	grouped := make(map[key][]dataset.Setlist)
	for _, setlist := range setlists {
		if setlist.Tour == "" {
			continue
		}
		k := key{artist: setlist.Artist, tour: setlist.Tour}
		grouped[k] = append(grouped[k], setlist)
	}
	if len(grouped) == 0 {
		return nil, ErrNotEnoughData
	}

	var tours []TourSummary
	for k, shows := range grouped {
		start, end := shows[0].EventDate, shows[0].EventDate
		countries := make(map[string]struct{})
		for _, show := range shows {
			if show.EventDate.Before(start) {
				start = show.EventDate
			}
			if show.EventDate.After(end) {
				end = show.EventDate
			}
			if show.Country != "" {
				countries[show.Country] = struct{}{}
			}
		}
		tours = append(tours, TourSummary{
			Artist:    k.artist,
			Tour:      k.tour,
			Start:     start,
			End:       end,
			Shows:     len(shows),
			Countries: len(countries),
		})
	}

	sort.Slice(tours, func(i, j int) bool {
		if !tours[i].Start.Equal(tours[j].Start) {
			return tours[i].Start.After(tours[j].Start)
		}
		if tours[i].Artist != tours[j].Artist {
			return tours[i].Artist < tours[j].Artist
		}
		return tours[i].Tour < tours[j].Tour
	})
	return tours, nil
}
