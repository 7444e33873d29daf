// Package spotify queries the Spotify Web API for artist followers and
// popularity, and scrapes monthly listener counts from the public artist page.
// The API does not expose monthly listeners at all.
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"moshpit/internal/config"
	"moshpit/internal/fetch"
	"moshpit/internal/logging"
)

// ErrArtistNotFound is returned when a search yields no artists.
var ErrArtistNotFound = errors.New("spotify: artist not found")

// ErrNoListenerCount is returned when the artist page carries no monthly
// listener figure.
var ErrNoListenerCount = errors.New("spotify: no monthly listener count on artist page")

var monthlyListeners = regexp.MustCompile(`([\d][\d.,\x{00a0}\s]*)\s*monthly listeners`)

// Artist is one Spotify artist.
type Artist struct {
	ID         string
	Name       string
	Followers  int64
	Popularity int
	Genres     []string
	WebURL     string
}

// Lookup defines the Spotify operations the analyses use.
type Lookup interface {
	SearchArtist(ctx context.Context, name string) (*Artist, error)
	MonthlyListeners(ctx context.Context, artistID string) (int64, error)
}

// Client provides access to the Spotify Web API.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	accountsURL  string
	webURL       string
	fetcher      *fetch.Client
	httpClient   *http.Client
	logger       *slog.Logger

	token       string
	tokenExpiry time.Time
}

var _ Lookup = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for the token exchange.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a Spotify client.
func New(cfg config.Spotify, fetcher *fetch.Client, logger *slog.Logger, opts ...Option) (*Client, error) {
	clientID := strings.TrimSpace(cfg.ClientID)
	if clientID == "" {
		return nil, errors.New("spotify client id required")
	}
	clientSecret := strings.TrimSpace(cfg.ClientSecret)
	if clientSecret == "" {
		return nil, errors.New("spotify client secret required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.AccountsURL) == "" || strings.TrimSpace(cfg.WebURL) == "" {
		return nil, errors.New("spotify base, accounts, and web urls required")
	}
	if fetcher == nil {
		return nil, errors.New("spotify fetch client required")
	}
	client := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		accountsURL:  strings.TrimSpace(cfg.AccountsURL),
		webURL:       strings.TrimRight(cfg.WebURL, "/"),
		fetcher:      fetcher,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logging.NewComponentLogger(logger, "spotify"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type searchResponse struct {
	Artists struct {
		Items []struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			Followers struct {
				Total int64 `json:"total"`
			} `json:"followers"`
			Popularity   int      `json:"popularity"`
			Genres       []string `json:"genres"`
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
		} `json:"items"`
	} `json:"artists"`
}

// SearchArtist finds the artist with the exact given name (case-insensitive),
// falling back to the first result.
func (c *Client) SearchArtist(ctx context.Context, name string) (*Artist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("artist name must not be empty")
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", name)
	params.Set("type", "artist")
	params.Set("limit", "5")
	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	var resp searchResponse
	if err := c.fetcher.GetJSON(ctx, endpoint, fetch.RequestOptions{Header: header}, &resp); err != nil {
		return nil, fmt.Errorf("search artist %q: %w", name, err)
	}
	if len(resp.Artists.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrArtistNotFound, name)
	}

	index := 0
	for i, item := range resp.Artists.Items {
		if strings.EqualFold(item.Name, name) {
			index = i
			break
		}
	}
	item := resp.Artists.Items[index]
	if !strings.EqualFold(item.Name, name) {
		c.logger.Warn("no exact artist match, using first result", logging.Args(
			logging.String(logging.FieldArtist, name),
			logging.String("matched", item.Name))...)
	}
	return &Artist{
		ID:         item.ID,
		Name:       item.Name,
		Followers:  item.Followers.Total,
		Popularity: item.Popularity,
		Genres:     item.Genres,
		WebURL:     item.ExternalURLs.Spotify,
	}, nil
}

// MonthlyListeners scrapes the monthly listener count from the artist's
// public web page.
func (c *Client) MonthlyListeners(ctx context.Context, artistID string) (int64, error) {
	artistID = strings.TrimSpace(artistID)
	if artistID == "" {
		return 0, errors.New("artist id must not be empty")
	}

	pageURL := fmt.Sprintf("%s/artist/%s", c.webURL, artistID)
	resp, err := c.fetcher.Get(ctx, pageURL, fetch.RequestOptions{})
	if err != nil {
		return 0, fmt.Errorf("fetch artist page: %w", err)
	}

	match := monthlyListeners.FindSubmatch(resp.Body)
	if match == nil {
		return 0, fmt.Errorf("%w: %s", ErrNoListenerCount, pageURL)
	}
	return parseCount(string(match[1]))
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns a cached client-credentials token, refreshing it a
// minute before expiry. Tokens never go through the response cache.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.accountsURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request access token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", errors.New("token endpoint returned empty token")
	}

	c.token = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)
	c.logger.Debug("refreshed access token", logging.Args(
		logging.Int("expires_in", token.ExpiresIn))...)
	return c.token, nil
}

func parseCount(value string) (int64, error) {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, fmt.Errorf("no digits in listener count %q", value)
	}
	count, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse listener count %q: %w", value, err)
	}
	return count, nil
}
