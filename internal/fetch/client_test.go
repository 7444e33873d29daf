package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"moshpit/internal/config"
	"moshpit/internal/fetch"
	"moshpit/internal/logging"
	"moshpit/internal/testsupport"
)

func newTestClient(t *testing.T) *fetch.Client {
	t.Helper()
	cache := testsupport.MustOpenCache(t)
	scrape := config.Scrape{RequestDelayMS: 1, MaxRetries: 2, TimeoutSeconds: 5}
	return fetch.New(cache, scrape, logging.NewNop())
}

func TestGetCachesResponses(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := newTestClient(t)
	ctx := context.Background()

	first, err := client.Get(ctx, srv.URL+"/artist", fetch.RequestOptions{})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if first.FromCache {
		t.Fatal("first request should miss the cache")
	}

	second, err := client.Get(ctx, srv.URL+"/artist", fetch.RequestOptions{})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !second.FromCache {
		t.Fatal("second request should hit the cache")
	}
	if hits.Load() != 1 {
		t.Fatalf("server hits = %d, want 1", hits.Load())
	}
	if string(second.Body) != `{"ok":true}` {
		t.Fatalf("body = %q", second.Body)
	}
}

func TestForceRefreshBypassesCache(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("v" + r.URL.Query().Get("x")))
	}))
	defer srv.Close()

	client := newTestClient(t)
	ctx := context.Background()
	url := srv.URL + "/page"

	if _, err := client.Get(ctx, url, fetch.RequestOptions{}); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := client.Get(ctx, url, fetch.RequestOptions{ForceRefresh: true}); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("server hits = %d, want 2", hits.Load())
	}
}

func TestGetRetriesOnTooManyRequests(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := newTestClient(t)
	resp, err := client.Get(context.Background(), srv.URL, fetch.RequestOptions{})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(resp.Body) != "ok" {
		t.Fatalf("body = %q", resp.Body)
	}
	if hits.Load() != 2 {
		t.Fatalf("server hits = %d, want 2", hits.Load())
	}
}

func TestGetReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := newTestClient(t)
	_, err := client.Get(context.Background(), srv.URL+"/missing", fetch.RequestOptions{})
	var statusErr *fetch.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", statusErr.StatusCode)
	}
}

func TestGetSendsHeaders(t *testing.T) {
	var gotAgent, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotKey = r.Header.Get("X-Api-Key")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := newTestClient(t)
	header := http.Header{}
	header.Set("User-Agent", "moshpit-test/1.0")
	header.Set("X-Api-Key", "secret")
	if _, err := client.Get(context.Background(), srv.URL, fetch.RequestOptions{Header: header}); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAgent != "moshpit-test/1.0" {
		t.Fatalf("user agent = %q", gotAgent)
	}
	if gotKey != "secret" {
		t.Fatalf("api key header = %q", gotKey)
	}
}

func TestGetJSONDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"artists":[{"name":"Aephanemer"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(t)
	var payload struct {
		Artists []struct {
			Name string `json:"name"`
		} `json:"artists"`
	}
	if err := client.GetJSON(context.Background(), srv.URL, fetch.RequestOptions{}, &payload); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if len(payload.Artists) != 1 || payload.Artists[0].Name != "Aephanemer" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestGetHonorsContextCancellation(t *testing.T) {
	client := fetch.New(nil, config.Scrape{RequestDelayMS: 60_000, MaxRetries: 0, TimeoutSeconds: 5}, logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "http://127.0.0.1:1/never", fetch.RequestOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
