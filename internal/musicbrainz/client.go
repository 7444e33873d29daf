// Package musicbrainz looks up artists and their release groups through the
// MusicBrainz web service.
package musicbrainz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"moshpit/internal/config"
	"moshpit/internal/dataset"
	"moshpit/internal/fetch"
	"moshpit/internal/logging"
)

// ErrArtistNotFound is returned when a search yields no artists at all.
var ErrArtistNotFound = errors.New("musicbrainz: artist not found")

// rereleaseKeywords flag release-group titles that are repackagings rather
// than new studio albums.
var rereleaseKeywords = []string{
	"remaster",
	"re-issue",
	"reissue",
	"re-release",
	"rerelease",
	"deluxe",
	"anniversary",
	"redux",
	"instrumental",
}

// Artist is one MusicBrainz artist search result.
type Artist struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Country        string `json:"country"`
	Disambiguation string `json:"disambiguation"`
	Score          int    `json:"score"`
}

type searchResponse struct {
	Artists []Artist `json:"artists"`
}

type releaseGroup struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	PrimaryType      string   `json:"primary-type"`
	SecondaryTypes   []string `json:"secondary-types"`
	FirstReleaseDate string   `json:"first-release-date"`
}

type releaseGroupResponse struct {
	ReleaseGroups      []releaseGroup `json:"release-groups"`
	ReleaseGroupCount  int            `json:"release-group-count"`
	ReleaseGroupOffset int            `json:"release-group-offset"`
}

// Lookup defines the MusicBrainz operations the analyses use.
type Lookup interface {
	SearchArtist(ctx context.Context, name string) (*Artist, error)
	ArtistMBID(ctx context.Context, name string) (string, error)
	ReleaseGroups(ctx context.Context, mbid, artist string) ([]dataset.Release, error)
}

// Client provides access to the MusicBrainz web service.
type Client struct {
	baseURL   string
	userAgent string
	fetcher   *fetch.Client
	logger    *slog.Logger
}

var _ Lookup = (*Client)(nil)

// New creates a MusicBrainz client. MusicBrainz requires a meaningful
// User-Agent and refuses anonymous clients.
func New(cfg config.MusicBrainz, fetcher *fetch.Client, logger *slog.Logger) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("musicbrainz base url required")
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		return nil, errors.New("musicbrainz user agent required")
	}
	if fetcher == nil {
		return nil, errors.New("musicbrainz fetch client required")
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		fetcher:   fetcher,
		logger:    logging.NewComponentLogger(logger, "musicbrainz"),
	}, nil
}

// SearchArtist finds the artist with the exact given name, falling back to the
// first search result when no exact match exists. The fallback is logged:
// lookups stay best effort and a wrong match should be visible.
func (c *Client) SearchArtist(ctx context.Context, name string) (*Artist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("artist name must not be empty")
	}

	query := url.Values{}
	query.Set("query", fmt.Sprintf("name:%q", name))
	query.Set("fmt", "json")
	endpoint := fmt.Sprintf("%s/artist/?%s", c.baseURL, query.Encode())

	var resp searchResponse
	if err := c.fetcher.GetJSON(ctx, endpoint, c.requestOptions(), &resp); err != nil {
		return nil, fmt.Errorf("search artist %q: %w", name, err)
	}
	if len(resp.Artists) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrArtistNotFound, name)
	}

	for i := range resp.Artists {
		if resp.Artists[i].Name == name {
			return &resp.Artists[i], nil
		}
	}

	first := resp.Artists[0]
	c.logger.Warn("no exact artist match, using first result", logging.Args(
		logging.String(logging.FieldArtist, name),
		logging.String("matched", first.Name))...)
	return &first, nil
}

// ArtistMBID returns the MusicBrainz identifier for an artist name.
func (c *Client) ArtistMBID(ctx context.Context, name string) (string, error) {
	artist, err := c.SearchArtist(ctx, name)
	if err != nil {
		return "", err
	}
	return artist.ID, nil
}

// ReleaseGroups returns the artist's studio albums sorted by first release
// date. Live albums, compilations and rereleases are filtered out; they would
// corrupt the release-gap arithmetic.
func (c *Client) ReleaseGroups(ctx context.Context, mbid, artist string) ([]dataset.Release, error) {
	mbid = strings.TrimSpace(mbid)
	if mbid == "" {
		return nil, errors.New("artist mbid must not be empty")
	}

	const pageSize = 100
	var releases []dataset.Release
	seenTitles := make(map[string]struct{})

	for offset := 0; ; offset += pageSize {
		query := url.Values{}
		query.Set("artist", mbid)
		query.Set("type", "album")
		query.Set("limit", fmt.Sprint(pageSize))
		query.Set("offset", fmt.Sprint(offset))
		query.Set("fmt", "json")
		endpoint := fmt.Sprintf("%s/release-group/?%s", c.baseURL, query.Encode())

		var resp releaseGroupResponse
		if err := c.fetcher.GetJSON(ctx, endpoint, c.requestOptions(), &resp); err != nil {
			return nil, fmt.Errorf("release groups for %s: %w", mbid, err)
		}

		for _, group := range resp.ReleaseGroups {
			if !isStudioAlbum(group) {
				continue
			}
			date, ok := parseReleaseDate(group.FirstReleaseDate)
			if !ok {
				continue
			}
			titleKey := strings.ToLower(strings.TrimSpace(group.Title))
			if _, seen := seenTitles[titleKey]; seen {
				continue
			}
			seenTitles[titleKey] = struct{}{}
			releases = append(releases, dataset.Release{
				Artist: artist,
				Title:  group.Title,
				Date:   date,
			})
		}

		if offset+pageSize >= resp.ReleaseGroupCount || len(resp.ReleaseGroups) == 0 {
			break
		}
	}

	sort.Slice(releases, func(i, j int) bool {
		return releases[i].Date.Before(releases[j].Date)
	})
	return releases, nil
}

func (c *Client) requestOptions() fetch.RequestOptions {
	header := http.Header{}
	header.Set("User-Agent", c.userAgent)
	header.Set("Accept", "application/json")
	return fetch.RequestOptions{Header: header}
}

func isStudioAlbum(group releaseGroup) bool {
	if group.PrimaryType != "Album" {
		return false
	}
	// Any secondary type (Live, Compilation, Remix, ...) disqualifies.
	if len(group.SecondaryTypes) > 0 {
		return false
	}
	title := strings.ToLower(group.Title)
	for _, keyword := range rereleaseKeywords {
		if strings.Contains(title, keyword) {
			return false
		}
	}
	return true
}

func parseReleaseDate(value string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if date, err := time.Parse(layout, value); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}
