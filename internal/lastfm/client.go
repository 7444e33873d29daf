// Package lastfm queries the Last.fm (Audioscrobbler) API for artist
// similarity, listener statistics, and genre-tag charts.
package lastfm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"moshpit/internal/config"
	"moshpit/internal/dataset"
	"moshpit/internal/fetch"
	"moshpit/internal/logging"
)

// APIError is a Last.fm error payload, delivered with HTTP 200.
type APIError struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lastfm: %s (code %d)", e.Message, e.Code)
}

// TagArtist is one artist on a genre-tag chart.
type TagArtist struct {
	Name string
	URL  string
	Rank int
}

// ArtistStats holds the listener and playcount numbers for one artist.
type ArtistStats struct {
	Name      string
	Listeners int64
	Playcount int64
}

// Lookup defines the Last.fm operations the analyses use.
type Lookup interface {
	SimilarArtists(ctx context.Context, mbid string, limit int) ([]dataset.SimilarArtist, error)
	ArtistInfo(ctx context.Context, name string) (*ArtistStats, error)
	TagTopArtists(ctx context.Context, tag string, maxArtists int) ([]TagArtist, error)
}

// Client provides access to the Last.fm API.
type Client struct {
	apiKey  string
	baseURL string
	fetcher *fetch.Client
	logger  *slog.Logger
}

var _ Lookup = (*Client)(nil)

// New creates a Last.fm client.
func New(cfg config.LastFM, fetcher *fetch.Client, logger *slog.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("lastfm api key required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("lastfm base url required")
	}
	if fetcher == nil {
		return nil, errors.New("lastfm fetch client required")
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, "lastfm"),
	}, nil
}

// Last.fm serializes every number as a string.
type similarResponse struct {
	APIError
	SimilarArtists struct {
		Artist []struct {
			Name  string `json:"name"`
			MBID  string `json:"mbid"`
			Match string `json:"match"`
			URL   string `json:"url"`
		} `json:"artist"`
	} `json:"similarartists"`
}

type infoResponse struct {
	APIError
	Artist struct {
		Name  string `json:"name"`
		Stats struct {
			Listeners string `json:"listeners"`
			Playcount string `json:"playcount"`
		} `json:"stats"`
	} `json:"artist"`
}

type tagTopResponse struct {
	APIError
	TopArtists struct {
		Artist []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
			Attr struct {
				Rank string `json:"rank"`
			} `json:"@attr"`
		} `json:"artist"`
		Attr struct {
			Page       string `json:"page"`
			TotalPages string `json:"totalPages"`
		} `json:"@attr"`
	} `json:"topartists"`
}

// SimilarArtists returns artists similar to the given MBID, most similar
// first. Score is the Last.fm match value in 0..1.
func (c *Client) SimilarArtists(ctx context.Context, mbid string, limit int) ([]dataset.SimilarArtist, error) {
	mbid = strings.TrimSpace(mbid)
	if mbid == "" {
		return nil, errors.New("artist mbid must not be empty")
	}
	if limit <= 0 {
		limit = 100
	}

	params := url.Values{}
	params.Set("method", "artist.getsimilar")
	params.Set("mbid", mbid)
	params.Set("limit", strconv.Itoa(limit))

	var resp similarResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("similar artists for %s: %w", mbid, err)
	}
	if resp.Code != 0 {
		return nil, &resp.APIError
	}

	similar := make([]dataset.SimilarArtist, 0, len(resp.SimilarArtists.Artist))
	for _, artist := range resp.SimilarArtists.Artist {
		match, err := strconv.ParseFloat(artist.Match, 64)
		if err != nil {
			c.logger.Warn("unparseable match score, skipping", logging.Args(
				logging.String(logging.FieldArtist, artist.Name),
				logging.String("match", artist.Match))...)
			continue
		}
		similar = append(similar, dataset.SimilarArtist{
			Name:  artist.Name,
			MBID:  artist.MBID,
			Score: match,
			URL:   artist.URL,
		})
	}
	return similar, nil
}

// ArtistInfo looks up listener statistics by artist name. Name lookup is used
// instead of MBID because MBID lookups are unreliable for names with
// apostrophes.
func (c *Client) ArtistInfo(ctx context.Context, name string) (*ArtistStats, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("artist name must not be empty")
	}

	params := url.Values{}
	params.Set("method", "artist.getinfo")
	params.Set("artist", name)

	var resp infoResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("artist info for %q: %w", name, err)
	}
	if resp.Code != 0 {
		return nil, &resp.APIError
	}

	listeners, err := strconv.ParseInt(resp.Artist.Stats.Listeners, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse listeners for %q: %w", name, err)
	}
	playcount, err := strconv.ParseInt(resp.Artist.Stats.Playcount, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse playcount for %q: %w", name, err)
	}
	return &ArtistStats{Name: resp.Artist.Name, Listeners: listeners, Playcount: playcount}, nil
}

// TagTopArtists returns up to maxArtists artists from a genre tag's chart,
// paging until the chart runs out.
func (c *Client) TagTopArtists(ctx context.Context, tag string, maxArtists int) ([]TagArtist, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, errors.New("tag must not be empty")
	}
	if maxArtists <= 0 {
		return nil, errors.New("max artists must be positive")
	}

	var artists []TagArtist
	for page := 1; len(artists) < maxArtists; page++ {
		params := url.Values{}
		params.Set("method", "tag.gettopartists")
		params.Set("tag", tag)
		params.Set("page", strconv.Itoa(page))

		var resp tagTopResponse
		if err := c.get(ctx, params, &resp); err != nil {
			return nil, fmt.Errorf("top artists for tag %q page %d: %w", tag, page, err)
		}
		if resp.Code != 0 {
			return nil, &resp.APIError
		}
		if len(resp.TopArtists.Artist) == 0 {
			break
		}

		for _, artist := range resp.TopArtists.Artist {
			rank, err := strconv.Atoi(artist.Attr.Rank)
			if err != nil {
				continue
			}
			artists = append(artists, TagArtist{Name: artist.Name, URL: artist.URL, Rank: rank})
			if len(artists) == maxArtists {
				break
			}
		}

		totalPages, err := strconv.Atoi(resp.TopArtists.Attr.TotalPages)
		if err == nil && page >= totalPages {
			break
		}
	}
	return artists, nil
}

func (c *Client) get(ctx context.Context, params url.Values, v any) error {
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")
	endpoint := fmt.Sprintf("%s/?%s", c.baseURL, params.Encode())
	return c.fetcher.GetJSON(ctx, endpoint, fetch.RequestOptions{}, v)
}
