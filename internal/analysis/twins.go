package analysis

import (
	"sort"
	"strings"

	"moshpit/internal/dataset"
)

// PerformerCount is one artist with the number of lineups they appeared on.
type PerformerCount struct {
	Artist string `json:"artist"`
	Genre  string `json:"genre,omitempty"`
	Count  int    `json:"count"`
}

// TwinPair is a pair of artists that shared more than one festival lineup.
// A and B are ordered alphabetically so reciprocal pairs collapse.
type TwinPair struct {
	A         string   `json:"a"`
	B         string   `json:"b"`
	Count     int      `json:"count"`
	Festivals []string `json:"festivals,omitempty"`
}

// TwinMatrix is the symmetric shared-lineup count matrix over the top
// performers.
type TwinMatrix struct {
	Artists []string `json:"artists"`
	Counts  [][]int  `json:"counts"`
}

// Twins analyses which artists keep appearing on the same festival bills.
type Twins struct {
	festivals []dataset.Festival
	genre     string
}

// NewTwins builds a twins analysis over festivals, keeping only lineups with
// more than one artist. genre filters performers; empty means all genres.
func NewTwins(festivals []dataset.Festival, genre string) *Twins {
	kept := make([]dataset.Festival, 0, len(festivals))
	for _, festival := range festivals {
		if len(festival.Artists) > 1 {
			kept = append(kept, festival)
		}
	}
	return &Twins{festivals: kept, genre: strings.TrimSpace(genre)}
}

// TopPerformers returns the topN artists by lineup appearances.
func (t *Twins) TopPerformers(topN int) []PerformerCount {
	counts := make(map[string]int)
	genres := make(map[string]string)
	for _, festival := range t.festivals {
		for _, artist := range festival.Artists {
			if t.genre != "" && artist.Genre != t.genre {
				continue
			}
			counts[artist.Name]++
			if artist.Genre != "" {
				genres[artist.Name] = artist.Genre
			}
		}
	}

	performers := make([]PerformerCount, 0, len(counts))
	for name, count := range counts {
		performers = append(performers, PerformerCount{Artist: name, Genre: genres[name], Count: count})
	}
	sort.Slice(performers, func(i, j int) bool {
		if performers[i].Count != performers[j].Count {
			return performers[i].Count > performers[j].Count
		}
		return performers[i].Artist < performers[j].Artist
	})
	if topN > 0 && topN < len(performers) {
		performers = performers[:topN]
	}
	return performers
}

// Pairs returns artist pairs that shared more than one lineup, most shared
// first. Artists without a profile URL are skipped; they are usually too
// early in their career for the pairing to mean anything.
func (t *Twins) Pairs() []TwinPair {
	type pairData struct {
		count     int
		festivals []string
	}
	pairs := make(map[[2]string]*pairData)
	for _, festival := range t.festivals {
		for _, a := range festival.Artists {
			for _, b := range festival.Artists {
				if a.URL == "" || b.URL == "" {
					continue
				}
				if t.genre != "" && a.Genre != t.genre && b.Genre != t.genre {
					continue
				}
				if a.Name >= b.Name {
					continue
				}
				key := [2]string{a.Name, b.Name}
				data := pairs[key]
				if data == nil {
					data = &pairData{}
					pairs[key] = data
				}
				data.count++
				data.festivals = append(data.festivals, festival.Name)
			}
		}
	}

	var twins []TwinPair
	for key, data := range pairs {
		if data.count <= 1 {
			continue
		}
		twins = append(twins, TwinPair{A: key[0], B: key[1], Count: data.count, Festivals: data.festivals})
	}
	sort.Slice(twins, func(i, j int) bool {
		if twins[i].Count != twins[j].Count {
			return twins[i].Count > twins[j].Count
		}
		if twins[i].A != twins[j].A {
			return twins[i].A < twins[j].A
		}
		return twins[i].B < twins[j].B
	})
	return twins
}

// Matrix returns the symmetric shared-lineup count matrix over the topN
// performers. The diagonal stays zero.
func (t *Twins) Matrix(topN int) TwinMatrix {
	performers := t.TopPerformers(topN)
	names := make([]string, len(performers))
	index := make(map[string]int, len(performers))
	for i, performer := range performers {
		names[i] = performer.Artist
		index[performer.Artist] = i
	}

	counts := make([][]int, len(names))
	for i := range counts {
		counts[i] = make([]int, len(names))
	}
	for _, pair := range t.Pairs() {
		i, okA := index[pair.A]
		j, okB := index[pair.B]
		if !okA || !okB {
			continue
		}
		counts[i][j] = pair.Count
		counts[j][i] = pair.Count
	}
	return TwinMatrix{Artists: names, Counts: counts}
}

// TwinsOf returns the pairs involving one artist, most shared lineups first.
func (t *Twins) TwinsOf(artist string) []TwinPair {
	var twins []TwinPair
	for _, pair := range t.Pairs() {
		if pair.A == artist || pair.B == artist {
			twins = append(twins, pair)
		}
	}
	return twins
}
