package webcache

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Format tags how a cached body is stored and how it should be decoded.
type Format string

const (
	FormatJSON  Format = "json"
	FormatXML   Format = "xml"
	FormatText  Format = "text"
	FormatBytes Format = "bytes"
)

// DetectFormat maps a Content-Type header to a storage format.
func DetectFormat(contentType string) Format {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case ct == "":
		return FormatText
	case strings.Contains(ct, "json"):
		return FormatJSON
	case strings.Contains(ct, "xml"):
		return FormatXML
	case strings.HasPrefix(ct, "text/"):
		return FormatText
	default:
		return FormatBytes
	}
}

// Entry is one cached HTTP response.
type Entry struct {
	URL         string
	Body        []byte
	Format      Format
	ContentType string
	StatusCode  int
	SessionID   string
	FetchedAt   time.Time
}

// Cache manages response persistence backed by SQLite.
type Cache struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the response database at path.
func Open(path string) (*Cache, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("cache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cache := &Cache{db: db, path: path}
	if err := cache.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return cache, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Path returns the database file location.
func (c *Cache) Path() string {
	return c.path
}

// Lookup returns the cached entry for url, or nil when absent.
func (c *Cache) Lookup(ctx context.Context, url string) (*Entry, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("url must not be empty")
	}

	row := c.db.QueryRowContext(ctx,
		`SELECT body, format, content_type, status_code, session_id, fetched_at
         FROM responses WHERE url = ?`, url)

	var (
		body        string
		format      string
		contentType sql.NullString
		statusCode  int
		sessionID   sql.NullString
		fetchedAt   string
	)
	if err := row.Scan(&body, &format, &contentType, &statusCode, &sessionID, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup %q: %w", url, err)
	}

	decoded, err := decodeBody(body, Format(format))
	if err != nil {
		return nil, fmt.Errorf("decode cached body for %q: %w", url, err)
	}

	entry := &Entry{
		URL:         url,
		Body:        decoded,
		Format:      Format(format),
		ContentType: contentType.String,
		StatusCode:  statusCode,
		SessionID:   sessionID.String,
	}
	if ts, parseErr := time.Parse(time.RFC3339Nano, fetchedAt); parseErr == nil {
		entry.FetchedAt = ts
	}
	return entry, nil
}

// Store upserts an entry. A zero FetchedAt is stamped with the current time.
func (c *Cache) Store(ctx context.Context, entry Entry) error {
	entry.URL = strings.TrimSpace(entry.URL)
	if entry.URL == "" {
		return errors.New("url must not be empty")
	}
	if entry.Format == "" {
		entry.Format = DetectFormat(entry.ContentType)
	}
	if entry.FetchedAt.IsZero() {
		entry.FetchedAt = time.Now().UTC()
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO responses
         (url, body, format, content_type, status_code, session_id, fetched_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.URL,
		encodeBody(entry.Body, entry.Format),
		string(entry.Format),
		nullableString(entry.ContentType),
		entry.StatusCode,
		nullableString(entry.SessionID),
		entry.FetchedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store %q: %w", entry.URL, err)
	}
	return nil
}

// Delete removes a single entry. Deleting an absent URL is not an error.
func (c *Cache) Delete(ctx context.Context, url string) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM responses WHERE url = ?", strings.TrimSpace(url)); err != nil {
		return fmt.Errorf("delete %q: %w", url, err)
	}
	return nil
}

// Purge removes entries fetched before cutoff and returns the removed count.
func (c *Cache) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		"DELETE FROM responses WHERE fetched_at < ?",
		cutoff.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("purge: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge rows affected: %w", err)
	}
	return removed, nil
}

// Stats summarizes cache contents.
type Stats struct {
	Entries   int64     `json:"entries"`
	SizeBytes int64     `json:"size_bytes"`
	Oldest    time.Time `json:"oldest,omitzero"`
	Newest    time.Time `json:"newest,omitzero"`
}

// Stats reports entry count, database size, and fetch-time bounds.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM responses").Scan(&stats.Entries); err != nil {
		return Stats{}, fmt.Errorf("count responses: %w", err)
	}

	var pageCount, pageSize int64
	if err := c.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err != nil {
		return Stats{}, fmt.Errorf("read page count: %w", err)
	}
	if err := c.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err != nil {
		return Stats{}, fmt.Errorf("read page size: %w", err)
	}
	stats.SizeBytes = pageCount * pageSize

	if stats.Entries > 0 {
		var oldest, newest string
		if err := c.db.QueryRowContext(ctx,
			"SELECT MIN(fetched_at), MAX(fetched_at) FROM responses").Scan(&oldest, &newest); err != nil {
			return Stats{}, fmt.Errorf("read fetch bounds: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, oldest); err == nil {
			stats.Oldest = ts
		}
		if ts, err := time.Parse(time.RFC3339Nano, newest); err == nil {
			stats.Newest = ts
		}
	}

	return stats, nil
}

func encodeBody(body []byte, format Format) string {
	if format == FormatBytes {
		return base64.StdEncoding.EncodeToString(body)
	}
	return string(body)
}

func decodeBody(body string, format Format) ([]byte, error) {
	if format == FormatBytes {
		return base64.StdEncoding.DecodeString(body)
	}
	return []byte(body), nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
