// Package setlistfm retrieves concert setlists from the Setlist.fm REST API.
package setlistfm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"moshpit/internal/config"
	"moshpit/internal/dataset"
	"moshpit/internal/fetch"
	"moshpit/internal/logging"
)

// eventDateLayout is Setlist.fm's dd-MM-yyyy event date format.
const eventDateLayout = "02-01-2006"

// Page is one page of setlist search results.
type Page struct {
	Setlists     []dataset.Setlist
	Number       int
	ItemsPerPage int
	Total        int
}

// LastPage reports whether this page is the final one.
func (p Page) LastPage() bool {
	if p.ItemsPerPage <= 0 {
		return true
	}
	return p.Number*p.ItemsPerPage >= p.Total
}

// Lookup defines the Setlist.fm operations the analyses use.
type Lookup interface {
	Setlists(ctx context.Context, artist string, page int) (*Page, error)
	SetlistsSince(ctx context.Context, artist string, yearsBack int) ([]dataset.Setlist, error)
}

// Client provides access to the Setlist.fm API.
type Client struct {
	apiKey  string
	baseURL string
	fetcher *fetch.Client
	logger  *slog.Logger
	now     func() time.Time
}

var _ Lookup = (*Client)(nil)

// New creates a Setlist.fm client.
func New(cfg config.SetlistFM, fetcher *fetch.Client, logger *slog.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("setlistfm api key required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("setlistfm base url required")
	}
	if fetcher == nil {
		return nil, errors.New("setlistfm fetch client required")
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, "setlistfm"),
		now:     time.Now,
	}, nil
}

type searchResponse struct {
	ItemsPerPage int `json:"itemsPerPage"`
	Page         int `json:"page"`
	Total        int `json:"total"`
	Setlist      []struct {
		EventDate string `json:"eventDate"`
		Artist    struct {
			Name string `json:"name"`
		} `json:"artist"`
		Venue struct {
			Name string `json:"name"`
			City struct {
				Name    string `json:"name"`
				Country struct {
					Name string `json:"name"`
				} `json:"country"`
			} `json:"city"`
		} `json:"venue"`
		Tour struct {
			Name string `json:"name"`
		} `json:"tour"`
		Sets struct {
			Set []struct {
				Song []struct {
					Name string `json:"name"`
				} `json:"song"`
			} `json:"set"`
		} `json:"sets"`
	} `json:"setlist"`
}

// Setlists returns one page of an artist's setlists, newest first as the API
// orders them. Setlists with unparseable event dates are skipped.
func (c *Client) Setlists(ctx context.Context, artist string, page int) (*Page, error) {
	artist = strings.TrimSpace(artist)
	if artist == "" {
		return nil, errors.New("artist name must not be empty")
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("artistName", artist)
	params.Set("p", strconv.Itoa(page))
	endpoint := fmt.Sprintf("%s/search/setlists?%s", c.baseURL, params.Encode())

	header := http.Header{}
	header.Set("x-api-key", c.apiKey)
	header.Set("Accept", "application/json")

	var resp searchResponse
	if err := c.fetcher.GetJSON(ctx, endpoint, fetch.RequestOptions{Header: header}, &resp); err != nil {
		return nil, fmt.Errorf("setlists for %q page %d: %w", artist, page, err)
	}

	result := &Page{
		Number:       resp.Page,
		ItemsPerPage: resp.ItemsPerPage,
		Total:        resp.Total,
	}
	for _, item := range resp.Setlist {
		eventDate, err := time.Parse(eventDateLayout, item.EventDate)
		if err != nil {
			c.logger.Warn("unparseable event date, skipping setlist", logging.Args(
				logging.String(logging.FieldArtist, item.Artist.Name),
				logging.String("event_date", item.EventDate))...)
			continue
		}
		songs := 0
		for _, set := range item.Sets.Set {
			songs += len(set.Song)
		}
		result.Setlists = append(result.Setlists, dataset.Setlist{
			Artist:    item.Artist.Name,
			EventDate: eventDate,
			Venue:     item.Venue.Name,
			City:      item.Venue.City.Name,
			Country:   item.Venue.City.Country.Name,
			Tour:      item.Tour.Name,
			SongCount: songs,
		})
	}
	return result, nil
}

// SetlistsSince pages through an artist's setlists until either the listing
// is exhausted or the earliest setlist on a page predates the cutoff year.
func (c *Client) SetlistsSince(ctx context.Context, artist string, yearsBack int) ([]dataset.Setlist, error) {
	if yearsBack < 1 {
		return nil, errors.New("years back must be positive")
	}
	cutoffYear := c.now().Year() - yearsBack

	var setlists []dataset.Setlist
	for page := 1; ; page++ {
		result, err := c.Setlists(ctx, artist, page)
		if err != nil {
			return nil, err
		}
		if len(result.Setlists) == 0 {
			break
		}

		earliest := result.Setlists[0].EventDate.Year()
		for _, setlist := range result.Setlists {
			if setlist.EventDate.Year() < earliest {
				earliest = setlist.EventDate.Year()
			}
			if setlist.EventDate.Year() >= cutoffYear {
				setlists = append(setlists, setlist)
			}
		}

		if result.LastPage() || earliest < cutoffYear {
			break
		}
	}
	return setlists, nil
}
