package genius_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moshpit/internal/fetch"
	"moshpit/internal/genius"
	"moshpit/internal/logging"
	"moshpit/internal/testsupport"
)

func newClient(t *testing.T, api, web *httptest.Server) *genius.Client {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	if api != nil {
		cfg.Genius.BaseURL = api.URL
	}
	if web != nil {
		cfg.Genius.WebURL = web.URL
	}
	fetcher := fetch.New(nil, cfg.Scrape, logging.NewNop())
	client, err := genius.New(cfg.Genius, fetcher, logging.NewNop())
	if err != nil {
		t.Fatalf("genius.New: %v", err)
	}
	return client
}

func TestSearchSongsFiltersAndPaginates(t *testing.T) {
	var pages []string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test" {
			t.Errorf("Authorization = %q", got)
		}
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		w.Header().Set("Content-Type", "application/json")
		switch page {
		case "1":
			w.Write([]byte(`{"response": {"hits": [
				{"result": {"title": "Ghost Tropic", "artist_names": "Agalloch", "path": "/Agalloch-ghost-tropic-lyrics"}},
				{"result": {"title": "Tribute Cover", "artist_names": "Some Agallochish Band", "path": "/cover"}}
			]}}`))
		case "2":
			w.Write([]byte(`{"response": {"hits": [
				{"result": {"title": "Limbs", "artist_names": "Agalloch", "path": "/Agalloch-limbs-lyrics"}}
			]}}`))
		default:
			w.Write([]byte(`{"response": {"hits": []}}`))
		}
	}))
	defer api.Close()

	client := newClient(t, api, nil)
	songs, err := client.SearchSongs(context.Background(), "Agalloch")
	if err != nil {
		t.Fatalf("SearchSongs: %v", err)
	}

	if len(pages) != 3 {
		t.Errorf("fetched pages %v, want 3 pages ending on an empty one", pages)
	}
	if len(songs) != 2 {
		t.Fatalf("got %d songs, want 2 (uncredited hit dropped): %v", len(songs), songs)
	}
	if songs[0].Title != "Ghost Tropic" || songs[1].Title != "Limbs" {
		t.Errorf("titles = %q, %q", songs[0].Title, songs[1].Title)
	}
	if !strings.HasSuffix(songs[0].LyricsURL, "/Agalloch-ghost-tropic-lyrics") {
		t.Errorf("LyricsURL = %q", songs[0].LyricsURL)
	}
}

func TestLyricsExtractsText(t *testing.T) {
	web := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
			<div data-lyrics-container="true" class="Lyrics__Container">[Verse 1]<br/>She wept black tears<br>And the forest <i>burned</i> &amp; fell</div>
			<div data-lyrics-container="true">[Outro]<br/>Ashes in the snow</div>
		</body></html>`))
	}))
	defer web.Close()

	client := newClient(t, nil, web)
	lyrics, err := client.Lyrics(context.Background(), web.URL+"/song")
	if err != nil {
		t.Fatalf("Lyrics: %v", err)
	}

	for _, want := range []string{
		"[Verse 1]\nShe wept black tears\nAnd the forest burned & fell",
		"[Outro]\nAshes in the snow",
	} {
		if !strings.Contains(lyrics, want) {
			t.Errorf("lyrics missing %q:\n%s", want, lyrics)
		}
	}
}

func TestLyricsMissingContainer(t *testing.T) {
	web := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>No lyrics here</body></html>`))
	}))
	defer web.Close()

	client := newClient(t, nil, web)
	if _, err := client.Lyrics(context.Background(), web.URL+"/song"); !errors.Is(err, genius.ErrNoLyrics) {
		t.Errorf("err = %v, want ErrNoLyrics", err)
	}
}
