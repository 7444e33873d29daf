// Package genius finds songs through the Genius API and scrapes lyrics from
// the song pages. The API itself does not serve lyrics.
package genius

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"moshpit/internal/config"
	"moshpit/internal/dataset"
	"moshpit/internal/fetch"
	"moshpit/internal/logging"
)

// ErrNoLyrics is returned when a song page contains no lyrics container.
var ErrNoLyrics = errors.New("genius: no lyrics found on page")

var (
	lyricsContainer = regexp.MustCompile(`(?s)<div[^>]*data-lyrics-container="true"[^>]*>(.*?)</div>`)
	lineBreak       = regexp.MustCompile(`<br\s*/?>`)
	htmlTag         = regexp.MustCompile(`<[^>]+>`)
)

// Lookup defines the Genius operations the lyrics analysis uses.
type Lookup interface {
	SearchSongs(ctx context.Context, artist string) ([]dataset.Song, error)
	Lyrics(ctx context.Context, songURL string) (string, error)
}

// Client provides access to the Genius API and song pages.
type Client struct {
	accessToken string
	baseURL     string
	webURL      string
	fetcher     *fetch.Client
	logger      *slog.Logger
}

var _ Lookup = (*Client)(nil)

// New creates a Genius client.
func New(cfg config.Genius, fetcher *fetch.Client, logger *slog.Logger) (*Client, error) {
	accessToken := strings.TrimSpace(cfg.AccessToken)
	if accessToken == "" {
		return nil, errors.New("genius access token required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.WebURL) == "" {
		return nil, errors.New("genius base and web urls required")
	}
	if fetcher == nil {
		return nil, errors.New("genius fetch client required")
	}
	return &Client{
		accessToken: accessToken,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		webURL:      strings.TrimRight(cfg.WebURL, "/"),
		fetcher:     fetcher,
		logger:      logging.NewComponentLogger(logger, "genius"),
	}, nil
}

type searchResponse struct {
	Response struct {
		Hits []struct {
			Result struct {
				Title       string `json:"title"`
				ArtistNames string `json:"artist_names"`
				Path        string `json:"path"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

// SearchSongs pages through the Genius search results for an artist until a
// page returns no hits. Hits where the artist is not among the credited
// artists (cover versions, unrelated matches) are dropped.
func (c *Client) SearchSongs(ctx context.Context, artist string) ([]dataset.Song, error) {
	artist = strings.TrimSpace(artist)
	if artist == "" {
		return nil, errors.New("artist name must not be empty")
	}

	credited, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(artist) + `\b`)
	if err != nil {
		return nil, fmt.Errorf("build credited-artist pattern: %w", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.accessToken)

	var songs []dataset.Song
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("q", artist)
		params.Set("page", strconv.Itoa(page))
		endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

		var resp searchResponse
		if err := c.fetcher.GetJSON(ctx, endpoint, fetch.RequestOptions{Header: header}, &resp); err != nil {
			return nil, fmt.Errorf("search songs for %q page %d: %w", artist, page, err)
		}
		if len(resp.Response.Hits) == 0 {
			break
		}

		for _, hit := range resp.Response.Hits {
			if !credited.MatchString(hit.Result.ArtistNames) {
				continue
			}
			songs = append(songs, dataset.Song{
				Artist:          artist,
				CreditedArtists: hit.Result.ArtistNames,
				Title:           hit.Result.Title,
				LyricsURL:       c.webURL + hit.Result.Path,
			})
		}
	}

	c.logger.Info("collected songs", logging.Args(
		logging.String(logging.FieldArtist, artist),
		logging.Int(logging.FieldCount, len(songs)))...)
	return songs, nil
}

// Lyrics fetches a song page and extracts the lyric text. Line breaks are
// preserved; markup is stripped.
func (c *Client) Lyrics(ctx context.Context, songURL string) (string, error) {
	songURL = strings.TrimSpace(songURL)
	if songURL == "" {
		return "", errors.New("song url must not be empty")
	}

	resp, err := c.fetcher.Get(ctx, songURL, fetch.RequestOptions{})
	if err != nil {
		return "", fmt.Errorf("fetch song page: %w", err)
	}

	containers := lyricsContainer.FindAllSubmatch(resp.Body, -1)
	if len(containers) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoLyrics, songURL)
	}

	var parts []string
	for _, container := range containers {
		text := string(container[1])
		text = lineBreak.ReplaceAllString(text, "\n")
		text = htmlTag.ReplaceAllString(text, "")
		text = html.UnescapeString(text)
		parts = append(parts, strings.TrimSpace(text))
	}
	return strings.Join(parts, "\n"), nil
}
