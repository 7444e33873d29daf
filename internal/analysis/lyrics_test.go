package analysis_test

import (
	"errors"
	"testing"

	"moshpit/internal/analysis"
	"moshpit/internal/dataset"
)

func TestIsJunkLine(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"42 Contributors", true},
		{"128 ContributorsTranslations", true},
		{"Blackwater Park Lyrics", true},
		{"[Verse 1]", true},
		{"[Chorus]", true},
		{"We march at dawn", false},
		{"Contributors", false},
		{"Lyrics", false},
	}
	for _, tc := range cases {
		if got := analysis.IsJunkLine(tc.line); got != tc.want {
			t.Errorf("IsJunkLine(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestCleanLyrics(t *testing.T) {
	raw := "12 Contributors\nBlackwater Park Lyrics\n[Verse 1]\nWe march\nthrough the night"
	if got := analysis.CleanLyrics(raw); got != "We march, through the night" {
		t.Errorf("CleanLyrics = %q", got)
	}

	// Bracketed notes that span lines survive the per-line junk filter and
	// are removed after joining.
	spanning := "We fall [into\nthe void] tonight"
	if got := analysis.CleanLyrics(spanning); got != "We fall  tonight" {
		t.Errorf("CleanLyrics = %q", got)
	}
}

func TestCountPronouns(t *testing.T) {
	counts := analysis.CountPronouns("I see you and they see me")
	if counts[analysis.PronounFirstSingular] != 2 {
		t.Errorf("first person singular = %d, want 2", counts[analysis.PronounFirstSingular])
	}
	if counts[analysis.PronounSecond] != 1 {
		t.Errorf("second person = %d, want 1", counts[analysis.PronounSecond])
	}
	if counts[analysis.PronounThirdPlural] != 1 {
		t.Errorf("third person plural = %d, want 1", counts[analysis.PronounThirdPlural])
	}
	if counts[analysis.PronounFirstPlural] != 0 {
		t.Errorf("first person plural = %d, want 0", counts[analysis.PronounFirstPlural])
	}
}

func TestSentiment(t *testing.T) {
	if got := analysis.Sentiment("hope and triumph"); got <= 0 {
		t.Errorf("Sentiment(positive) = %v, want > 0", got)
	}
	if got := analysis.Sentiment("death and despair"); got >= 0 {
		t.Errorf("Sentiment(negative) = %v, want < 0", got)
	}
	if got := analysis.Sentiment(""); got != 0 {
		t.Errorf("Sentiment(empty) = %v, want 0", got)
	}
}

func TestAnalyzeSong(t *testing.T) {
	song := dataset.Song{
		Artist: "Primordial",
		Title:  "Lone",
		Lyrics: "[Intro]\nI stand alone\nyou fall",
	}

	features, ok := analysis.AnalyzeSong(song)
	if !ok {
		t.Fatal("AnalyzeSong returned no features")
	}
	if features.Length != 5 {
		t.Errorf("Length = %d, want 5", features.Length)
	}
	if !almostEqual(features.Diversity, 1) {
		t.Errorf("Diversity = %v, want 1", features.Diversity)
	}
	// "I" is the only first-person pronoun; "you" is one of two pronouns.
	if !almostEqual(features.Perspective, 1) {
		t.Errorf("Perspective = %v, want 1", features.Perspective)
	}
	if !almostEqual(features.Directness, 0.5) {
		t.Errorf("Directness = %v, want 0.5", features.Directness)
	}
	if features.Sentiment >= 0 {
		t.Errorf("Sentiment = %v, want < 0", features.Sentiment)
	}
}

func TestAnalyzeSongInstrumental(t *testing.T) {
	song := dataset.Song{Artist: "Pelican", Title: "Drought", Lyrics: "[Instrumental]"}
	if _, ok := analysis.AnalyzeSong(song); ok {
		t.Error("AnalyzeSong produced features for an instrumental")
	}
}

func TestAggregateLyrics(t *testing.T) {
	songs := []dataset.Song{
		{Artist: "Katatonia", Title: "One", Lyrics: "we fall down"},
		{Artist: "Katatonia", Title: "Two", Lyrics: "we rise again and again"},
		{Artist: "Alcest", Title: "Three", Lyrics: "light over the sea"},
		{Artist: "Bongripper", Title: "Four", Lyrics: ""},
	}

	profiles, err := analysis.AggregateLyrics(songs)
	if err != nil {
		t.Fatalf("AggregateLyrics: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2 (the lyric-less song is dropped): %v", len(profiles), profiles)
	}
	if profiles[0].Artist != "Alcest" || profiles[1].Artist != "Katatonia" {
		t.Fatalf("order = %q, %q; want name ascending", profiles[0].Artist, profiles[1].Artist)
	}
	if profiles[1].Songs != 2 {
		t.Errorf("Songs = %d, want 2", profiles[1].Songs)
	}
	if !almostEqual(profiles[1].MeanLength, 4) {
		t.Errorf("MeanLength = %v, want 4", profiles[1].MeanLength)
	}
}

func TestNearestByLyrics(t *testing.T) {
	lyricsProfile := func(artist string, meanLength float64) analysis.ArtistLyricsProfile {
		return analysis.ArtistLyricsProfile{
			Artist:      artist,
			Songs:       5,
			MeanLength:  meanLength,
			Diversity:   0.5,
			Perspective: 0.5,
			Directness:  0.5,
		}
	}
	profiles := []analysis.ArtistLyricsProfile{
		lyricsProfile("Agalloch", 10),
		lyricsProfile("Borknagar", 12),
		lyricsProfile("Carcass", 100),
		lyricsProfile("Deicide", 200),
	}

	neighbors, err := analysis.NearestByLyrics(profiles, "Agalloch")
	if err != nil {
		t.Fatalf("NearestByLyrics: %v", err)
	}
	if len(neighbors) != 3 {
		t.Fatalf("got %d neighbors, want 3", len(neighbors))
	}
	wantOrder := []string{"Borknagar", "Carcass", "Deicide"}
	for i, want := range wantOrder {
		if neighbors[i].Artist != want {
			t.Fatalf("neighbor %d = %q, want %q (all %v)", i, neighbors[i].Artist, want, neighbors)
		}
	}
	if neighbors[0].Distance >= neighbors[2].Distance {
		t.Errorf("distances not ascending: %v", neighbors)
	}

	if _, err := analysis.NearestByLyrics(profiles, "Nobody"); !errors.Is(err, analysis.ErrNotEnoughData) {
		t.Errorf("unknown artist err = %v, want ErrNotEnoughData", err)
	}
	if _, err := analysis.NearestByLyrics(profiles[:2], "Agalloch"); !errors.Is(err, analysis.ErrNotEnoughData) {
		t.Errorf("small set err = %v, want ErrNotEnoughData", err)
	}
}
