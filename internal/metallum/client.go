// Package metallum scrapes similar-artist recommendations from Encyclopaedia
// Metallum (metal-archives.com). The band search uses the site's ajax JSON
// endpoint; the recommendation table comes back as an HTML fragment.
package metallum

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"moshpit/internal/config"
	"moshpit/internal/dataset"
	"moshpit/internal/fetch"
	"moshpit/internal/logging"
)

// ErrBandNotFound is returned when the band search yields no results.
var ErrBandNotFound = errors.New("metallum: band not found")

var (
	bandAnchor = regexp.MustCompile(`href="([^"]*/bands/[^"]+/(\d+))"[^>]*>([^<]+)</a>`)
	recRow     = regexp.MustCompile(`(?is)<tr[^>]*id="recRow_[^"]*"[^>]*>(.*?)</tr>`)
	tableCell  = regexp.MustCompile(`(?is)<td[^>]*>(.*?)</td>`)
	hrefAttr   = regexp.MustCompile(`href="([^"]+)"`)
	anyTag     = regexp.MustCompile(`<[^>]+>`)
)

// Band is one band search result.
type Band struct {
	ID    string
	Name  string
	URL   string
	Genre string
}

// Scraper defines the Metallum operations the similarity analysis uses.
type Scraper interface {
	SearchBand(ctx context.Context, name string) (*Band, error)
	SimilarArtists(ctx context.Context, name string) ([]dataset.SimilarArtist, error)
}

// Client scrapes metal-archives.com.
type Client struct {
	baseURL string
	fetcher *fetch.Client
	logger  *slog.Logger
}

var _ Scraper = (*Client)(nil)

// New creates a Metallum client.
func New(cfg config.Metallum, fetcher *fetch.Client, logger *slog.Logger) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("metallum base url required")
	}
	if fetcher == nil {
		return nil, errors.New("metallum fetch client required")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, "metallum"),
	}, nil
}

type bandSearchResponse struct {
	AAData [][]string `json:"aaData"`
}

// SearchBand finds a band by name. An exact case-insensitive name match wins;
// otherwise the first result is used and logged, bands share names constantly
// on Metallum.
func (c *Client) SearchBand(ctx context.Context, name string) (*Band, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("band name must not be empty")
	}

	params := url.Values{}
	params.Set("field", "name")
	params.Set("query", name)
	endpoint := fmt.Sprintf("%s/search/ajax-band-search/?%s", c.baseURL, params.Encode())

	var resp bandSearchResponse
	if err := c.fetcher.GetJSON(ctx, endpoint, fetch.RequestOptions{}, &resp); err != nil {
		return nil, fmt.Errorf("search band %q: %w", name, err)
	}

	var bands []Band
	for _, row := range resp.AAData {
		if len(row) < 2 {
			continue
		}
		match := bandAnchor.FindStringSubmatch(row[0])
		if match == nil {
			continue
		}
		bands = append(bands, Band{
			ID:    match[2],
			Name:  html.UnescapeString(match[3]),
			URL:   match[1],
			Genre: html.UnescapeString(row[1]),
		})
	}
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrBandNotFound, name)
	}

	for i := range bands {
		if strings.EqualFold(bands[i].Name, name) {
			return &bands[i], nil
		}
	}
	c.logger.Warn("no exact band match, using first result", logging.Args(
		logging.String(logging.FieldArtist, name),
		logging.String("matched", bands[0].Name))...)
	return &bands[0], nil
}

// SimilarArtists returns the band's similar-artist table sorted as served,
// highest score first. Score is Metallum's integer vote count.
func (c *Client) SimilarArtists(ctx context.Context, name string) ([]dataset.SimilarArtist, error) {
	band, err := c.SearchBand(ctx, name)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/band/ajax-recommendations/id/%s?showMoreSimilar=1", c.baseURL, band.ID)
	resp, err := c.fetcher.Get(ctx, endpoint, fetch.RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("recommendations for %q: %w", name, err)
	}

	var similar []dataset.SimilarArtist
	for _, row := range recRow.FindAllStringSubmatch(string(resp.Body), -1) {
		cells := tableCell.FindAllStringSubmatch(row[1], -1)
		if len(cells) < 4 {
			continue
		}

		artistURL := ""
		if match := hrefAttr.FindStringSubmatch(cells[0][1]); match != nil {
			artistURL = match[1]
		}
		score, err := strconv.Atoi(cellText(cells[3][1]))
		if err != nil {
			continue
		}
		similar = append(similar, dataset.SimilarArtist{
			Name:    cellText(cells[0][1]),
			URL:     artistURL,
			Country: cellText(cells[1][1]),
			Genre:   cellText(cells[2][1]),
			Score:   float64(score),
		})
	}

	c.logger.Debug("scraped similar artists", logging.Args(
		logging.String(logging.FieldArtist, band.Name),
		logging.Int(logging.FieldCount, len(similar)))...)
	return similar, nil
}

func cellText(cell string) string {
	return strings.TrimSpace(html.UnescapeString(anyTag.ReplaceAllString(cell, "")))
}
