package analysis_test

import (
	"errors"
	"testing"
	"time"

	"moshpit/internal/analysis"
	"moshpit/internal/dataset"
)

func release(artist string, year int) dataset.Release {
	return dataset.Release{
		Artist: artist,
		Title:  artist + " " + time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006"),
		Date:   time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPredictReleases(t *testing.T) {
	// Six albums; the gap window covers the latest five. Gaps in days:
	// 2015->2017 731, 2017->2019 730, 2019->2022 1096, 2022->2024 730.
	// Median 730.5, mean 821.75, prediction offset 776 days.
	releases := []dataset.Release{
		release("Hypnos", 2010),
		release("Hypnos", 2015),
		release("Hypnos", 2017),
		release("Hypnos", 2019),
		release("Hypnos", 2022),
		release("Hypnos", 2024),
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	predictions, err := analysis.PredictReleases(releases, analysis.ReleaseOptions{Now: now})
	if err != nil {
		t.Fatalf("PredictReleases: %v", err)
	}
	if len(predictions) != 1 {
		t.Fatalf("got %d predictions, want 1", len(predictions))
	}

	p := predictions[0]
	if p.Releases != 6 {
		t.Errorf("Releases = %d, want 6", p.Releases)
	}
	if p.MinGapDays != 730 || p.MaxGapDays != 1096 {
		t.Errorf("gap range = %d..%d, want 730..1096", p.MinGapDays, p.MaxGapDays)
	}
	if p.MedianGap != 730 || p.MeanGap != 821 {
		t.Errorf("median/mean gap = %d/%d, want 730/821", p.MedianGap, p.MeanGap)
	}
	if want := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC); !p.NextPredicted.Equal(want) {
		t.Errorf("NextPredicted = %v, want %v", p.NextPredicted, want)
	}
	if want := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC); !p.NextEarliest.Equal(want) {
		t.Errorf("NextEarliest = %v, want %v", p.NextEarliest, want)
	}
	if want := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC); !p.NextLatest.Equal(want) {
		t.Errorf("NextLatest = %v, want %v", p.NextLatest, want)
	}
}

func TestPredictReleasesSkipsSingleAlbum(t *testing.T) {
	releases := []dataset.Release{release("Debut", 2020)}
	_, err := analysis.PredictReleases(releases, analysis.ReleaseOptions{})
	if !errors.Is(err, analysis.ErrNotEnoughData) {
		t.Fatalf("err = %v, want ErrNotEnoughData", err)
	}
}

func TestPredictReleasesRecencyFilter(t *testing.T) {
	releases := []dataset.Release{
		release("Active", 2020),
		release("Active", 2023),
		release("Dormant", 2008),
		release("Dormant", 2012),
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	predictions, err := analysis.PredictReleases(releases, analysis.ReleaseOptions{
		RecencyYears: 5,
		Now:          now,
	})
	if err != nil {
		t.Fatalf("PredictReleases: %v", err)
	}
	if len(predictions) != 1 || predictions[0].Artist != "Active" {
		t.Errorf("predictions = %v, want only Active", predictions)
	}
}

func TestPredictReleasesHorizonFilter(t *testing.T) {
	// Ten-year cadence predicts well past a one-year horizon.
	releases := []dataset.Release{
		release("Glacial", 2010),
		release("Glacial", 2020),
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := analysis.PredictReleases(releases, analysis.ReleaseOptions{
		HorizonYears: 1,
		Now:          now,
	})
	if !errors.Is(err, analysis.ErrNotEnoughData) {
		t.Fatalf("err = %v, want ErrNotEnoughData", err)
	}
}
