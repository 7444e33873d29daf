// Package concertsmetal scrapes festival listings and lineups from
// concerts-metal.com. The site offers no API; pages are parsed with the same
// split-based heuristics that proved more robust than structural parsing
// against its irregular markup.
package concertsmetal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"moshpit/internal/config"
	"moshpit/internal/dataset"
	"moshpit/internal/fetch"
	"moshpit/internal/logging"
)

var (
	tableRow   = regexp.MustCompile(`(?is)<tr[^>]*>.*?</tr>`)
	historyRef = regexp.MustCompile(`(?i)<a\s+title="[^"]*?History[^"]*?"\s+href="(f-[^"]+?)"`)
	nextRef    = regexp.MustCompile(`(?i)next:\s*<a\s+href="(concert_[^"]+?)"`)
)

// Scraper defines the concerts-metal.com operations the recommender uses.
type Scraper interface {
	FestivalsForYear(ctx context.Context, year int) ([]dataset.Festival, error)
	Lineup(ctx context.Context, festivalURL string) ([]dataset.LineupEntry, error)
}

// Client scrapes concerts-metal.com.
type Client struct {
	baseURL string
	fetcher *fetch.Client
	logger  *slog.Logger
}

var _ Scraper = (*Client)(nil)

// New creates a concerts-metal.com client.
func New(cfg config.ConcertsMetal, fetcher *fetch.Client, logger *slog.Logger) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("concerts-metal base url required")
	}
	if fetcher == nil {
		return nil, errors.New("concerts-metal fetch client required")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, "concertsmetal"),
	}, nil
}

// FestivalsForYear scrapes the festival overview page for one year. Blocks
// that cannot be parsed are skipped rather than failing the whole page; the
// site's markup is not uniform.
func (c *Client) FestivalsForYear(ctx context.Context, year int) ([]dataset.Festival, error) {
	if year < 1990 || year > 2100 {
		return nil, fmt.Errorf("implausible year %d", year)
	}

	pageURL := fmt.Sprintf("%s/festivals-%d.html", c.baseURL, year)
	resp, err := c.fetcher.Get(ctx, pageURL, fetch.RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch festival list for %d: %w", year, err)
	}

	// Each festival lives in a div with class d-xl-none.
	blocks := strings.Split(string(resp.Body), `class="d-xl-none"`)
	var festivals []dataset.Festival
	skipped := 0
	for _, block := range blocks[1:] {
		festival, ok := parseFestivalBlock(block)
		if !ok {
			skipped++
			continue
		}
		festivals = append(festivals, festival)
	}

	c.logger.Info("scraped festival list", logging.Args(
		logging.Int("year", year),
		logging.Int(logging.FieldCount, len(festivals)),
		logging.Int("skipped", skipped))...)
	return festivals, nil
}

// parseFestivalBlock pulls one festival out of its overview block. The title
// attribute holds "Name - ... - City - Country - Date".
func parseFestivalBlock(block string) (dataset.Festival, bool) {
	details, ok := between(block, `<a title="`, `" href="`)
	if !ok {
		return dataset.Festival{}, false
	}
	fields := strings.Split(details, " - ")
	if len(fields) < 4 {
		return dataset.Festival{}, false
	}

	pageURL, ok := between(block, `" href="`, `"><b>`)
	if !ok {
		return dataset.Festival{}, false
	}

	festival := dataset.Festival{
		Name:    strings.TrimSpace(fields[0]),
		City:    strings.TrimSpace(fields[len(fields)-3]),
		Country: strings.TrimSpace(fields[len(fields)-2]),
		Date:    strings.TrimSpace(fields[len(fields)-1]),
		URL:     pageURL,
	}
	if festival.Name == "" {
		return dataset.Festival{}, false
	}
	if match := historyRef.FindStringSubmatch(block); match != nil {
		festival.HistoryURL = match[1]
	}
	if match := nextRef.FindStringSubmatch(block); match != nil {
		festival.NextURL = match[1]
	}
	return festival, true
}

// Lineup scrapes a festival page's artist table. Rows without both a name and
// a genre are junk (day headers, spacers) and are dropped, as are duplicates.
func (c *Client) Lineup(ctx context.Context, festivalURL string) ([]dataset.LineupEntry, error) {
	festivalURL = strings.TrimSpace(festivalURL)
	if festivalURL == "" {
		return nil, errors.New("festival url must not be empty")
	}

	pageURL := festivalURL
	if !strings.HasPrefix(pageURL, "http") {
		pageURL = c.baseURL + "/" + strings.TrimLeft(pageURL, "/")
	}
	resp, err := c.fetcher.Get(ctx, pageURL, fetch.RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch festival page: %w", err)
	}

	var lineup []dataset.LineupEntry
	seen := make(map[string]struct{})
	for _, row := range tableRow.FindAllString(string(resp.Body), -1) {
		entry, ok := parseArtistRow(row)
		if !ok {
			continue
		}
		key := entry.Name + "\x1f" + entry.Genre + "\x1f" + entry.URL
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		lineup = append(lineup, entry)
	}
	return lineup, nil
}

// parseArtistRow pulls one artist out of a lineup table row. Headliners are
// bold, regular bands are links, siteless bands are bare font tags; each
// shape needs its own extraction.
func parseArtistRow(row string) (dataset.LineupEntry, bool) {
	var entry dataset.LineupEntry

	if href, ok := between(row, `" href="`, `">`); ok && strings.HasPrefix(href, "g-") {
		entry.URL = href
	}
	if genre, ok := between(row, `"> - `, `</div>`); ok {
		entry.Genre = strings.TrimSpace(genre)
	}

	entry.Name = lastAfter(strings.Split(row, "</a>")[0], ">")
	if entry.Name == "" {
		entry.Name = lastAfter(strings.Split(row, "</b>")[0], ">")
	}
	if entry.Name == "" && entry.URL == "" {
		entry.Name = lastAfter(strings.Split(row, "</font>")[0], `">`)
	}
	entry.Name = strings.TrimSpace(entry.Name)
	if strings.Contains(entry.Name, "&nbsp;") || strings.Contains(entry.Name, "<") {
		return dataset.LineupEntry{}, false
	}

	if entry.Name == "" || entry.Genre == "" {
		return dataset.LineupEntry{}, false
	}
	return entry, true
}

func between(s, start, end string) (string, bool) {
	_, after, found := strings.Cut(s, start)
	if !found {
		return "", false
	}
	value, _, found := strings.Cut(after, end)
	if !found {
		return "", false
	}
	return value, true
}

func lastAfter(s, sep string) string {
	parts := strings.Split(s, sep)
	return parts[len(parts)-1]
}
