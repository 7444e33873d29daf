package analysis

import (
	"math"
	"sort"

	"moshpit/internal/dataset"
)

// SimilarityRow is one artist that both platforms list as similar to the
// subject, with per-platform scores and ranks.
type SimilarityRow struct {
	Artist        string  `json:"artist"`
	MetallumScore float64 `json:"metallum_score"`
	LastFMScore   float64 `json:"lastfm_score"`
	MetallumRank  float64 `json:"metallum_rank"`
	LastFMRank    float64 `json:"lastfm_rank"`
}

// CombinedRank is the sum of both platform ranks; smaller means both
// platforms agree the artist is close.
func (r SimilarityRow) CombinedRank() float64 {
	return r.MetallumRank + r.LastFMRank
}

// Discrepancy is the absolute rank difference between the platforms.
func (r SimilarityRow) Discrepancy() float64 {
	return math.Abs(r.MetallumRank - r.LastFMRank)
}

// PlatformSimilarity is the joined similar-artist comparison for one subject
// artist.
type PlatformSimilarity struct {
	Artist      string          `json:"artist"`
	Rows        []SimilarityRow `json:"rows"`
	Correlation float64         `json:"correlation"`
}

// ComparePlatformSimilarity joins the Metallum and Last.fm similar-artist
// lists on artist name, keeping only artists both platforms list, ranks each
// side (ties share the lowest rank), and correlates the rankings with
// Spearman. Name matching folds case and whitespace.
func ComparePlatformSimilarity(artist string, metallum, lastfm []dataset.SimilarArtist) (*PlatformSimilarity, error) {
	lastfmScores := make(map[string]float64, len(lastfm))
	lastfmNames := make(map[string]string, len(lastfm))
	for _, similar := range lastfm {
		key := dataset.FoldName(similar.Name)
		lastfmScores[key] = similar.Score
		lastfmNames[key] = similar.Name
	}

	var rows []SimilarityRow
	for _, similar := range metallum {
		key := dataset.FoldName(similar.Name)
		lastfmScore, ok := lastfmScores[key]
		if !ok {
			continue
		}
		rows = append(rows, SimilarityRow{
			Artist:        similar.Name,
			MetallumScore: similar.Score,
			LastFMScore:   lastfmScore,
		})
		delete(lastfmScores, key)
		delete(lastfmNames, key)
	}
	if len(rows) < 2 {
		return nil, ErrNotEnoughData
	}

	metallumScores := make([]float64, len(rows))
	lastfmJoined := make([]float64, len(rows))
	for i, row := range rows {
		metallumScores[i] = row.MetallumScore
		lastfmJoined[i] = row.LastFMScore
	}
	metallumRanks := Ranks(metallumScores)
	lastfmRanks := Ranks(lastfmJoined)
	for i := range rows {
		rows[i].MetallumRank = metallumRanks[i]
		rows[i].LastFMRank = lastfmRanks[i]
	}

	correlation, err := Spearman(metallumRanks, lastfmRanks)
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CombinedRank() != rows[j].CombinedRank() {
			return rows[i].CombinedRank() < rows[j].CombinedRank()
		}
		return rows[i].Artist < rows[j].Artist
	})
	return &PlatformSimilarity{Artist: artist, Rows: rows, Correlation: correlation}, nil
}

// MostDiscrepant returns the topN rows where the platforms disagree hardest.
func (p *PlatformSimilarity) MostDiscrepant(topN int) []SimilarityRow {
	rows := append([]SimilarityRow(nil), p.Rows...)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Discrepancy() != rows[j].Discrepancy() {
			return rows[i].Discrepancy() > rows[j].Discrepancy()
		}
		return rows[i].Artist < rows[j].Artist
	})
	if topN > 0 && topN < len(rows) {
		rows = rows[:topN]
	}
	return rows
}
