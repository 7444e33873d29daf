package recommend

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"

	"moshpit/internal/dataset"
	"moshpit/internal/logging"
)

// ErrUnknownArtist is returned when an artist does not appear in any mined lineup.
var ErrUnknownArtist = errors.New("artist not found in festival data")

// ErrNotMined is returned when a query runs before Mine or Load.
var ErrNotMined = errors.New("no mined data; run Mine first")

// editionYear matches a trailing edition year in a festival name
// ("Brutal Assault 2024" -> "Brutal Assault").
var editionYear = regexp.MustCompile(`\s\d{4}$`)

// BaseName strips the trailing edition year from a festival name.
func BaseName(festival string) string {
	return editionYear.ReplaceAllString(festival, "")
}

// MiningSettings records how the rules were mined.
type MiningSettings struct {
	MinSupportLineups int     `json:"min_support_lineups"`
	MaxRuleLength     int     `json:"max_rule_length"`
	MinSupport        float64 `json:"min_support"`
}

// MineOptions tune a mining run.
type MineOptions struct {
	MinSupportLineups int
	MaxRuleLength     int
}

// RecommendOptions tune a recommendation query.
type RecommendOptions struct {
	MinLift       float64
	ExcludePlayed bool
	Raw           bool
}

// FestivalScore is one scored recommendation. For raw queries Festival keeps
// its edition year; aggregated queries average across editions.
type FestivalScore struct {
	Festival string  `json:"festival"`
	Score    float64 `json:"score"`
}

// ArtistScore is one similarity result.
type ArtistScore struct {
	Artist string  `json:"artist"`
	Score  float64 `json:"score"`
}

// Edge is one co-appearance similarity edge between two artists.
type Edge struct {
	A      string  `json:"a"`
	B      string  `json:"b"`
	Weight float64 `json:"weight"`
}

// Summary describes a mined recommender.
type Summary struct {
	Festivals int            `json:"festivals"`
	Artists   int            `json:"artists"`
	Itemsets  int            `json:"itemsets"`
	Rules     int            `json:"rules"`
	Settings  MiningSettings `json:"settings"`
}

// Recommender mines association rules over festival lineups and answers
// recommendation and similarity queries.
type Recommender struct {
	festivals     map[string][]string
	festivalNames []string
	itemsets      []Itemset
	rules         []Rule
	settings      MiningSettings

	logger *slog.Logger
}

// New creates an empty recommender. Populate it with Mine or Load.
func New(logger *slog.Logger) *Recommender {
	return &Recommender{
		festivals: make(map[string][]string),
		logger:    logging.NewComponentLogger(logger, "recommend"),
	}
}

// Mine builds frequent itemsets and association rules from festival lineups.
// Festivals with fewer than two artists carry no co-appearance signal and are
// dropped. MinSupportLineups is the number of lineups artists must share, not
// a fraction; the derived fraction is recorded in the settings.
func (r *Recommender) Mine(festivals []dataset.Festival, opts MineOptions) error {
	if opts.MinSupportLineups < 1 {
		return errors.New("min support lineups must be positive")
	}
	if opts.MaxRuleLength < 2 {
		return errors.New("max rule length must be at least 2")
	}

	r.festivals = make(map[string][]string, len(festivals))
	r.festivalNames = r.festivalNames[:0]
	for _, festival := range festivals {
		lineup := dedupeNames(festival.LineupNames())
		if len(lineup) < 2 {
			continue
		}
		if _, exists := r.festivals[festival.Name]; exists {
			continue
		}
		r.festivals[festival.Name] = lineup
		r.festivalNames = append(r.festivalNames, festival.Name)
	}
	if len(r.festivals) == 0 {
		return errors.New("no festivals with more than one artist")
	}

	transactions := make([][]string, 0, len(r.festivalNames))
	artists := make(map[string]struct{})
	for _, name := range r.festivalNames {
		lineup := r.festivals[name]
		transactions = append(transactions, lineup)
		for _, artist := range lineup {
			artists[artist] = struct{}{}
		}
	}
	r.logger.Info("mining lineups", logging.Args(
		logging.Int("lineups", len(transactions)),
		logging.Int("artists", len(artists)))...)

	r.settings = MiningSettings{
		MinSupportLineups: opts.MinSupportLineups,
		MaxRuleLength:     opts.MaxRuleLength,
		MinSupport:        float64(opts.MinSupportLineups) / float64(len(transactions)),
	}

	r.itemsets = MineFrequentItemsets(transactions, opts.MinSupportLineups, opts.MaxRuleLength)
	r.logger.Info("found frequent itemsets", logging.Args(
		logging.Int(logging.FieldCount, len(r.itemsets)))...)

	r.rules = GenerateRules(r.itemsets, len(transactions), 1.0)
	r.logger.Info("generated association rules", logging.Args(
		logging.Int(logging.FieldCount, len(r.rules)))...)

	return nil
}

// RecommendFestivals scores festivals whose lineups overlap the artists the
// mined rules associate with the given artist. Scores aggregate festival
// editions by average unless Raw is set. An empty result is not an error;
// data from concerts-metal.com is incomplete, so ExcludePlayed is best effort.
func (r *Recommender) RecommendFestivals(artist string, opts RecommendOptions) ([]FestivalScore, error) {
	if len(r.festivals) == 0 {
		return nil, ErrNotMined
	}

	coArtists := make(map[string]struct{})
	for _, rule := range r.rules {
		if rule.Lift < opts.MinLift || !rule.HasAntecedent(artist) {
			continue
		}
		for _, consequent := range rule.Consequents {
			coArtists[consequent] = struct{}{}
		}
	}

	scored := make([]FestivalScore, 0, len(r.festivalNames))
	for _, festival := range r.festivalNames {
		overlap := 0
		for _, name := range r.festivals[festival] {
			if _, ok := coArtists[name]; ok {
				overlap++
			}
		}
		scored = append(scored, FestivalScore{Festival: festival, Score: float64(overlap)})
	}

	if opts.Raw {
		sortScores(scored)
		return scored, nil
	}

	played := make(map[string]struct{})
	if opts.ExcludePlayed {
		for festival, lineup := range r.festivals {
			for _, name := range lineup {
				if name == artist {
					played[BaseName(festival)] = struct{}{}
					break
				}
			}
		}
	}

	sums := make(map[string]float64)
	editions := make(map[string]int)
	for _, score := range scored {
		base := BaseName(score.Festival)
		if _, skip := played[base]; skip {
			continue
		}
		sums[base] += score.Score
		editions[base]++
	}

	recommendations := make([]FestivalScore, 0, len(sums))
	for base, sum := range sums {
		average := sum / float64(editions[base])
		if average <= 0 {
			continue
		}
		recommendations = append(recommendations, FestivalScore{Festival: base, Score: average})
	}
	sortScores(recommendations)

	if len(recommendations) == 0 {
		r.logger.Info("no recommendations found", logging.Args(
			logging.String(logging.FieldArtist, artist))...)
	}
	return recommendations, nil
}

// CoAppearingArtists ranks the topN most frequent festival performers by
// Jaccard similarity of shared lineups with the given artist.
func (r *Recommender) CoAppearingArtists(artist string, topN int, minSimilarity float64) ([]ArtistScore, error) {
	if len(r.festivals) == 0 {
		return nil, ErrNotMined
	}

	appearances := r.appearanceSets()
	target, ok := appearances[artist]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArtist, artist)
	}

	var scores []ArtistScore
	for _, other := range topPerformers(appearances, topN) {
		if other == artist {
			continue
		}
		similarity := jaccard(target, appearances[other])
		if similarity >= minSimilarity {
			scores = append(scores, ArtistScore{Artist: other, Score: similarity})
		}
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Artist < scores[j].Artist
	})
	return scores, nil
}

// SimilarityGraph returns Jaccard similarity edges between the topN most
// frequent performers, dropping edges below minSimilarity. Isolated artists
// simply never appear in the edge list.
func (r *Recommender) SimilarityGraph(topN int, minSimilarity float64) ([]Edge, error) {
	if len(r.festivals) == 0 {
		return nil, ErrNotMined
	}

	appearances := r.appearanceSets()
	top := topPerformers(appearances, topN)

	var edges []Edge
	for i, a := range top {
		for _, b := range top[i+1:] {
			weight := jaccard(appearances[a], appearances[b])
			if weight >= minSimilarity {
				edges = append(edges, Edge{A: a, B: b, Weight: weight})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Weight != edges[j].Weight {
			return edges[i].Weight > edges[j].Weight
		}
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges, nil
}

// Summary describes the mined state.
func (r *Recommender) Summary() Summary {
	artists := make(map[string]struct{})
	for _, lineup := range r.festivals {
		for _, artist := range lineup {
			artists[artist] = struct{}{}
		}
	}
	return Summary{
		Festivals: len(r.festivals),
		Artists:   len(artists),
		Itemsets:  len(r.itemsets),
		Rules:     len(r.rules),
		Settings:  r.settings,
	}
}

// Rules exposes the mined rules.
func (r *Recommender) Rules() []Rule {
	return r.rules
}

// Itemsets exposes the mined frequent itemsets.
func (r *Recommender) Itemsets() []Itemset {
	return r.itemsets
}

func (r *Recommender) appearanceSets() map[string]map[string]struct{} {
	appearances := make(map[string]map[string]struct{})
	for _, festival := range r.festivalNames {
		for _, artist := range r.festivals[festival] {
			set, ok := appearances[artist]
			if !ok {
				set = make(map[string]struct{})
				appearances[artist] = set
			}
			set[festival] = struct{}{}
		}
	}
	return appearances
}

func topPerformers(appearances map[string]map[string]struct{}, topN int) []string {
	artists := make([]string, 0, len(appearances))
	for artist := range appearances {
		artists = append(artists, artist)
	}
	sort.Slice(artists, func(i, j int) bool {
		if len(appearances[artists[i]]) != len(appearances[artists[j]]) {
			return len(appearances[artists[i]]) > len(appearances[artists[j]])
		}
		return artists[i] < artists[j]
	})
	if topN > 0 && topN < len(artists) {
		artists = artists[:topN]
	}
	return artists
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for key := range a {
		if _, ok := b[key]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func sortScores(scores []FestivalScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Festival < scores[j].Festival
	})
}

func dedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var result []string
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}
