package analysis_test

import (
	"errors"
	"testing"

	"moshpit/internal/analysis"
	"moshpit/internal/config"
	"moshpit/internal/dataset"
)

func profile(artist, genre string, followers, listeners int64) dataset.ArtistProfile {
	return dataset.ArtistProfile{
		Artist:           artist,
		Genre:            genre,
		SpotifyFollowers: followers,
		SpotifyListeners: listeners,
	}
}

func TestComparePushedness(t *testing.T) {
	// Nails is below the listener floor and Gatecreeper has no follower
	// count; both are dropped.
	profiles := []dataset.ArtistProfile{
		profile("Mgla", "Black Metal", 1000, 2000),
		profile("Uada", "Black Metal", 2000, 3000),
		profile("Nails", "Death Metal", 1000, 500),
		profile("Gatecreeper", "Death Metal", 0, 5000),
		profile("Tomb Mold", "Death Metal", 4000, 4800),
	}
	opts := config.Pushedness{MinListeners: 1000, OutlierQuantile: 0, TopArtists: 10}

	genres, err := analysis.ComparePushedness(profiles, opts)
	if err != nil {
		t.Fatalf("ComparePushedness: %v", err)
	}
	if len(genres) != 2 {
		t.Fatalf("got %d genres, want 2: %v", len(genres), genres)
	}

	// Black Metal: pushedness 2.0 and 1.5, median 1.75. Death Metal: 1.2.
	black := genres[0]
	if black.Genre != "Black Metal" {
		t.Fatalf("most pushed genre = %q, want Black Metal", black.Genre)
	}
	if black.Artists != 2 {
		t.Errorf("Black Metal artists = %d, want 2", black.Artists)
	}
	if !almostEqual(black.MedianPushedness, 1.75) {
		t.Errorf("MedianPushedness = %v, want 1.75", black.MedianPushedness)
	}
	if !almostEqual(black.MedianFollowers, 1500) || !almostEqual(black.MedianListeners, 2500) {
		t.Errorf("medians = %v/%v, want 1500/2500", black.MedianFollowers, black.MedianListeners)
	}
	if black.MostPushed.Artist != "Mgla" || black.LeastPushed.Artist != "Uada" {
		t.Errorf("most/least = %q/%q", black.MostPushed.Artist, black.LeastPushed.Artist)
	}

	death := genres[1]
	if death.Artists != 1 {
		t.Errorf("Death Metal artists = %d, want 1 (floor and missing-count drops)", death.Artists)
	}
	if !almostEqual(death.MedianPushedness, 1.2) {
		t.Errorf("Death Metal MedianPushedness = %v, want 1.2", death.MedianPushedness)
	}
}

func TestComparePushednessTrimsOutliers(t *testing.T) {
	// Pushedness values 1, 2, 3, 4, 100. The 0.1/0.9 quantiles are 1.4 and
	// 61.6, so the first and last artists are trimmed.
	profiles := []dataset.ArtistProfile{
		profile("A", "Doom Metal", 1000, 1000),
		profile("B", "Doom Metal", 1000, 2000),
		profile("C", "Doom Metal", 1000, 3000),
		profile("D", "Doom Metal", 1000, 4000),
		profile("E", "Doom Metal", 1000, 100000),
	}
	opts := config.Pushedness{MinListeners: 0, OutlierQuantile: 0.1, TopArtists: 10}

	genres, err := analysis.ComparePushedness(profiles, opts)
	if err != nil {
		t.Fatalf("ComparePushedness: %v", err)
	}
	if len(genres) != 1 {
		t.Fatalf("got %d genres, want 1", len(genres))
	}
	if genres[0].Artists != 3 {
		t.Errorf("kept %d artists, want 3 after trimming", genres[0].Artists)
	}
	if !almostEqual(genres[0].MedianPushedness, 3) {
		t.Errorf("MedianPushedness = %v, want 3", genres[0].MedianPushedness)
	}
}

func TestComparePushednessNeedsData(t *testing.T) {
	profiles := []dataset.ArtistProfile{profile("Lone", "Sludge", 100, 200)}
	_, err := analysis.ComparePushedness(profiles, config.Pushedness{OutlierQuantile: 0.05})
	if !errors.Is(err, analysis.ErrNotEnoughData) {
		t.Fatalf("err = %v, want ErrNotEnoughData", err)
	}
}
