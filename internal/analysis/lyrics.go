package analysis

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"moshpit/internal/dataset"
)

// Pronoun categories counted in lyrics. The perspective and directness
// features are ratios over these counts.
const (
	PronounFirstSingular  = "first_person_sg"
	PronounFirstPlural    = "first_person_pl"
	PronounSecond         = "second_person_sg_pl"
	PronounThirdMasculine = "third_person_masc"
	PronounThirdFeminine  = "third_person_fem"
	PronounThirdNeuter    = "third_person_neut"
	PronounThirdPlural    = "third_person_ep_pl"
)

var pronounSets = map[string][]string{
	PronounFirstSingular:  {"i", "me", "my", "mine", "myself"},
	PronounFirstPlural:    {"we", "us", "our", "ours", "ourselves"},
	PronounSecond:         {"you", "your", "yours", "yourself", "yourselves"},
	PronounThirdMasculine: {"he", "him", "his", "himself"},
	PronounThirdFeminine:  {"she", "her", "hers", "herself"},
	PronounThirdNeuter:    {"it", "its", "itself"},
	PronounThirdPlural:    {"they", "them", "their", "theirs", "themself", "themselves"},
}

var pronounPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(pronounSets))
	for category, words := range pronounSets {
		patterns[category] = regexp.MustCompile(`\b(` + strings.Join(words, "|") + `)\b`)
	}
	return patterns
}()

// Junk lines left over from scraped Genius pages: contributor counts,
// "<title> Lyrics" headers, and [Verse]/[Chorus] tags.
var junkLine = regexp.MustCompile(`^\d+.*[Cc]ontributors{0,1}$|^.*\sLyrics$|^\[.*\]$`)

var bracketed = regexp.MustCompile(`\[[^\]]*\]`)

var wordToken = regexp.MustCompile(`[a-z']+`)

// IsJunkLine reports whether a scraped lyric line is page furniture rather
// than lyrics.
func IsJunkLine(line string) bool {
	return junkLine.MatchString(strings.TrimSpace(line))
}

// CleanLyrics drops junk lines, joins the rest comma-separated, and removes
// leftover bracketed notes that spread across several lines.
func CleanLyrics(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || IsJunkLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return bracketed.ReplaceAllString(strings.Join(kept, ", "), "")
}

// CountPronouns counts pronoun occurrences per category in lower-cased text.
func CountPronouns(text string) map[string]int {
	text = strings.ToLower(text)
	counts := make(map[string]int, len(pronounPatterns))
	for category, pattern := range pronounPatterns {
		counts[category] = len(pattern.FindAllString(text, -1))
	}
	return counts
}

// Sentiment scores text in [-1, 1] with a valence lexicon: the summed word
// valences are squashed the way VADER normalizes its compound score. Far
// cruder than a full intensity analyzer but stable and dependency-free,
// which matters more here than nuance; metal lyrics are not subtle.
func Sentiment(text string) float64 {
	var sum float64
	for _, word := range wordToken.FindAllString(strings.ToLower(text), -1) {
		sum += valences[word]
	}
	const alpha = 15
	return sum / math.Sqrt(sum*sum+alpha)
}

// LyricsFeatures are the per-song numeric features the artist comparison is
// built on.
type LyricsFeatures struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	// Length is the word count of the cleaned lyrics.
	Length int `json:"length"`
	// Diversity is the unique-to-total word ratio.
	Diversity float64 `json:"diversity"`
	// Perspective is first-person singular over all first-person pronouns.
	Perspective float64 `json:"perspective"`
	// Directness is second-person over all pronouns.
	Directness float64 `json:"directness"`
	Sentiment  float64 `json:"sentiment"`
}

// AnalyzeSong computes the lyric features for one song. Returns false when
// the song has no usable lyrics.
func AnalyzeSong(song dataset.Song) (LyricsFeatures, bool) {
	cleaned := CleanLyrics(song.Lyrics)
	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return LyricsFeatures{}, false
	}

	unique := make(map[string]struct{}, len(words))
	for _, word := range words {
		unique[word] = struct{}{}
	}

	pronouns := CountPronouns(cleaned)
	firstSg := pronouns[PronounFirstSingular]
	firstPl := pronouns[PronounFirstPlural]
	total := 0
	for _, count := range pronouns {
		total += count
	}

	perspective := 0.0
	if firstSg+firstPl > 0 {
		perspective = float64(firstSg) / float64(firstSg+firstPl)
	}
	directness := 0.0
	if total > 0 {
		directness = float64(pronouns[PronounSecond]) / float64(total)
	}

	return LyricsFeatures{
		Artist:      song.Artist,
		Title:       song.Title,
		Length:      len(words),
		Diversity:   float64(len(unique)) / float64(len(words)),
		Perspective: perspective,
		Directness:  directness,
		Sentiment:   Sentiment(cleaned),
	}, true
}

// ArtistLyricsProfile is the per-artist mean of the song features.
type ArtistLyricsProfile struct {
	Artist      string  `json:"artist"`
	Songs       int     `json:"songs"`
	MeanLength  float64 `json:"mean_length"`
	Diversity   float64 `json:"diversity"`
	Perspective float64 `json:"perspective"`
	Directness  float64 `json:"directness"`
	Sentiment   float64 `json:"sentiment"`
}

func (p ArtistLyricsProfile) vector() []float64 {
	return []float64{p.MeanLength, p.Diversity, p.Perspective, p.Directness, p.Sentiment}
}

// AggregateLyrics averages song features per artist, sorted by artist name.
func AggregateLyrics(songs []dataset.Song) ([]ArtistLyricsProfile, error) {
	byArtist := make(map[string][]LyricsFeatures)
	for _, song := range songs {
		features, ok := AnalyzeSong(song)
		if !ok {
			continue
		}
		byArtist[song.Artist] = append(byArtist[song.Artist], features)
	}
	if len(byArtist) == 0 {
		return nil, ErrNotEnoughData
	}

	profiles := make([]ArtistLyricsProfile, 0, len(byArtist))
	for artist, features := range byArtist {
		profile := ArtistLyricsProfile{Artist: artist, Songs: len(features)}
		for _, f := range features {
			profile.MeanLength += float64(f.Length)
			profile.Diversity += f.Diversity
			profile.Perspective += f.Perspective
			profile.Directness += f.Directness
			profile.Sentiment += f.Sentiment
		}
		n := float64(len(features))
		profile.MeanLength /= n
		profile.Diversity /= n
		profile.Perspective /= n
		profile.Directness /= n
		profile.Sentiment /= n
		profiles = append(profiles, profile)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Artist < profiles[j].Artist
	})
	return profiles, nil
}

// LyricsNeighbor is one artist ranked by lyrical distance to the subject.
type LyricsNeighbor struct {
	Artist   string  `json:"artist"`
	Distance float64 `json:"distance"`
}

// NearestByLyrics ranks all other artists by Euclidean distance to the given
// artist after min-max scaling and PCA keeping 95% of the variance.
func NearestByLyrics(profiles []ArtistLyricsProfile, artist string) ([]LyricsNeighbor, error) {
	target := -1
	rows := make([][]float64, len(profiles))
	for i, profile := range profiles {
		rows[i] = profile.vector()
		if profile.Artist == artist {
			target = i
		}
	}
	if target < 0 {
		return nil, ErrNotEnoughData
	}
	if len(profiles) < 3 {
		return nil, ErrNotEnoughData
	}

	projected, err := PCA(MinMaxScale(rows), 0.95)
	if err != nil {
		return nil, err
	}

	neighbors := make([]LyricsNeighbor, 0, len(profiles)-1)
	for i, profile := range profiles {
		if i == target {
			continue
		}
		neighbors = append(neighbors, LyricsNeighbor{
			Artist:   profile.Artist,
			Distance: Euclidean(projected[target], projected[i]),
		})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Distance != neighbors[j].Distance {
			return neighbors[i].Distance < neighbors[j].Distance
		}
		return neighbors[i].Artist < neighbors[j].Artist
	})
	return neighbors, nil
}
