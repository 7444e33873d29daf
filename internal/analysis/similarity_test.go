package analysis_test

import (
	"errors"
	"testing"

	"moshpit/internal/analysis"
	"moshpit/internal/dataset"
)

func similar(name string, score float64) dataset.SimilarArtist {
	return dataset.SimilarArtist{Name: name, Score: score}
}

func TestComparePlatformSimilarity(t *testing.T) {
	metallum := []dataset.SimilarArtist{
		similar("Aeternus", 40),
		similar("Belphegor", 30),
		similar("Centinex", 20),
		similar("Desaster", 10),
	}
	lastfm := []dataset.SimilarArtist{
		similar("Aeternus", 0.9),
		similar("Belphegor", 0.5),
		similar("Centinex", 0.7),
		similar("Xasthur", 0.3),
	}

	result, err := analysis.ComparePlatformSimilarity("Marduk", metallum, lastfm)
	if err != nil {
		t.Fatalf("ComparePlatformSimilarity: %v", err)
	}

	// Desaster and Xasthur appear on one platform only.
	if len(result.Rows) != 3 {
		t.Fatalf("got %d rows, want 3: %v", len(result.Rows), result.Rows)
	}

	// Metallum ranks: Aeternus 1, Belphegor 2, Centinex 3.
	// Last.fm ranks:  Aeternus 1, Centinex 2, Belphegor 3.
	// Spearman over (1,2,3) and (1,3,2) is 0.5.
	if !almostEqual(result.Correlation, 0.5) {
		t.Errorf("Correlation = %v, want 0.5", result.Correlation)
	}

	// Combined ranks: Aeternus 2, Belphegor 5, Centinex 5; name breaks the tie.
	wantOrder := []string{"Aeternus", "Belphegor", "Centinex"}
	for i, want := range wantOrder {
		if result.Rows[i].Artist != want {
			t.Fatalf("row %d = %q, want %q", i, result.Rows[i].Artist, want)
		}
	}
	if result.Rows[0].MetallumRank != 1 || result.Rows[0].LastFMRank != 1 {
		t.Errorf("Aeternus ranks = %+v", result.Rows[0])
	}
}

func TestComparePlatformSimilarityFoldsNames(t *testing.T) {
	metallum := []dataset.SimilarArtist{
		similar("  insomnium ", 30),
		similar("WOLFHEART", 20),
	}
	lastfm := []dataset.SimilarArtist{
		similar("Insomnium", 0.8),
		similar("Wolfheart", 0.4),
	}

	result, err := analysis.ComparePlatformSimilarity("Omnium Gatherum", metallum, lastfm)
	if err != nil {
		t.Fatalf("ComparePlatformSimilarity: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("got %d rows, want 2: %v", len(result.Rows), result.Rows)
	}
}

func TestComparePlatformSimilarityNeedsOverlap(t *testing.T) {
	metallum := []dataset.SimilarArtist{similar("Aeternus", 40), similar("Belphegor", 30)}
	lastfm := []dataset.SimilarArtist{similar("Aeternus", 0.9)}

	_, err := analysis.ComparePlatformSimilarity("Marduk", metallum, lastfm)
	if !errors.Is(err, analysis.ErrNotEnoughData) {
		t.Fatalf("err = %v, want ErrNotEnoughData", err)
	}
}

func TestMostDiscrepant(t *testing.T) {
	metallum := []dataset.SimilarArtist{
		similar("Aeternus", 40),
		similar("Belphegor", 30),
		similar("Centinex", 20),
	}
	lastfm := []dataset.SimilarArtist{
		similar("Aeternus", 0.9),
		similar("Belphegor", 0.5),
		similar("Centinex", 0.7),
	}

	result, err := analysis.ComparePlatformSimilarity("Marduk", metallum, lastfm)
	if err != nil {
		t.Fatalf("ComparePlatformSimilarity: %v", err)
	}

	// Aeternus agrees (0); Belphegor and Centinex disagree by one rank each.
	top := result.MostDiscrepant(1)
	if len(top) != 1 || top[0].Artist != "Belphegor" {
		t.Errorf("MostDiscrepant(1) = %v, want Belphegor", top)
	}
	if !almostEqual(top[0].Discrepancy(), 1) {
		t.Errorf("Discrepancy = %v, want 1", top[0].Discrepancy())
	}
}
