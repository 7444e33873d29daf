package analysis

import (
	"sort"
	"time"

	"moshpit/internal/dataset"
)

// predictionWindow is how many of the latest releases the gap statistics are
// based on; old gaps say little about a band's current pace.
const predictionWindow = 5

// ReleasePrediction is the release-cadence summary and next-album estimate
// for one artist.
type ReleasePrediction struct {
	Artist       string    `json:"artist"`
	Releases     int       `json:"releases"`
	LastRelease  time.Time `json:"last_release"`
	MinGapDays   int       `json:"min_gap_days"`
	MaxGapDays   int       `json:"max_gap_days"`
	MedianGap    int       `json:"median_gap_days"`
	MeanGap      int       `json:"mean_gap_days"`
	NextEarliest time.Time `json:"next_earliest"`
	NextLatest   time.Time `json:"next_latest"`
	// NextPredicted is the last release shifted by the mean of the median
	// and mean gaps.
	NextPredicted time.Time `json:"next_predicted"`
}

// ReleaseOptions bound which artists get predictions.
type ReleaseOptions struct {
	// RecencyYears drops artists whose last release is older than this;
	// a band silent for that long is not on a cadence. Zero disables.
	RecencyYears int
	// HorizonYears drops predictions further out than this. Zero disables.
	HorizonYears int
	Now          time.Time
}

// PredictReleases estimates each artist's next studio album from the gaps
// between their existing ones. Artists with fewer than two releases carry no
// gap signal and are skipped. Results are sorted by predicted date.
func PredictReleases(releases []dataset.Release, opts ReleaseOptions) ([]ReleasePrediction, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	byArtist := make(map[string][]dataset.Release)
	for _, release := range releases {
		byArtist[release.Artist] = append(byArtist[release.Artist], release)
	}

	var predictions []ReleasePrediction
	for artist, albums := range byArtist {
		sort.Slice(albums, func(i, j int) bool {
			return albums[i].Date.Before(albums[j].Date)
		})
		if len(albums) < 2 {
			continue
		}

		last := albums[len(albums)-1].Date
		if opts.RecencyYears > 0 && last.Before(now.AddDate(-opts.RecencyYears, 0, 0)) {
			continue
		}

		recent := albums
		if len(recent) > predictionWindow {
			recent = recent[len(recent)-predictionWindow:]
		}
		gaps := make([]float64, 0, len(recent)-1)
		for i := 1; i < len(recent); i++ {
			gaps = append(gaps, recent[i].Date.Sub(recent[i-1].Date).Hours()/24)
		}

		minGap, maxGap := gaps[0], gaps[0]
		for _, gap := range gaps[1:] {
			if gap < minGap {
				minGap = gap
			}
			if gap > maxGap {
				maxGap = gap
			}
		}
		median := Median(gaps)
		mean := Mean(gaps)
		predicted := last.AddDate(0, 0, int((median+mean)/2))

		if opts.HorizonYears > 0 && predicted.After(now.AddDate(opts.HorizonYears, 0, 0)) {
			continue
		}

		predictions = append(predictions, ReleasePrediction{
			Artist:        artist,
			Releases:      len(albums),
			LastRelease:   last,
			MinGapDays:    int(minGap),
			MaxGapDays:    int(maxGap),
			MedianGap:     int(median),
			MeanGap:       int(mean),
			NextEarliest:  last.AddDate(0, 0, int(minGap)),
			NextLatest:    last.AddDate(0, 0, int(maxGap)),
			NextPredicted: predicted,
		})
	}
	if len(predictions) == 0 {
		return nil, ErrNotEnoughData
	}

	sort.Slice(predictions, func(i, j int) bool {
		if !predictions[i].NextPredicted.Equal(predictions[j].NextPredicted) {
			return predictions[i].NextPredicted.Before(predictions[j].NextPredicted)
		}
		return predictions[i].Artist < predictions[j].Artist
	})
	return predictions, nil
}
