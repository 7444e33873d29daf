package setlistfm_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"moshpit/internal/fetch"
	"moshpit/internal/logging"
	"moshpit/internal/setlistfm"
	"moshpit/internal/testsupport"
)

func newClient(t *testing.T, server *httptest.Server) *setlistfm.Client {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.SetlistFM.BaseURL = server.URL
	fetcher := fetch.New(nil, cfg.Scrape, logging.NewNop())
	client, err := setlistfm.New(cfg.SetlistFM, fetcher, logging.NewNop())
	if err != nil {
		t.Fatalf("setlistfm.New: %v", err)
	}
	return client
}

func TestSetlistsParsesPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test" {
			t.Errorf("x-api-key = %q", got)
		}
		if got := r.URL.Query().Get("artistName"); got != "Gojira" {
			t.Errorf("artistName = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"itemsPerPage": 20, "page": 1, "total": 2, "setlist": [
			{"eventDate": "15-06-2024",
			 "artist": {"name": "Gojira"},
			 "venue": {"name": "Hellfest", "city": {"name": "Clisson", "country": {"name": "France"}}},
			 "tour": {"name": "Fortitude World Tour"},
			 "sets": {"set": [{"song": [{"name": "Stranded"}, {"name": "Flying Whales"}]}, {"song": [{"name": "Vacuity"}]}]}},
			{"eventDate": "not-a-date",
			 "artist": {"name": "Gojira"},
			 "venue": {"name": "Broken", "city": {"name": "", "country": {"name": ""}}},
			 "sets": {"set": []}}
		]}`))
	}))
	defer server.Close()

	client := newClient(t, server)
	page, err := client.Setlists(context.Background(), "Gojira", 1)
	if err != nil {
		t.Fatalf("Setlists: %v", err)
	}

	if len(page.Setlists) != 1 {
		t.Fatalf("got %d setlists, want 1 (bad date skipped): %v", len(page.Setlists), page.Setlists)
	}
	setlist := page.Setlists[0]
	if setlist.Venue != "Hellfest" || setlist.Country != "France" {
		t.Errorf("setlist = %+v", setlist)
	}
	if setlist.Tour != "Fortitude World Tour" {
		t.Errorf("Tour = %q", setlist.Tour)
	}
	if setlist.SongCount != 3 {
		t.Errorf("SongCount = %d, want 3", setlist.SongCount)
	}
	if setlist.EventDate.Year() != 2024 || setlist.EventDate.Month() != 6 {
		t.Errorf("EventDate = %v", setlist.EventDate)
	}
	if !page.LastPage() {
		t.Error("LastPage() = false on final page")
	}
}

func TestSetlistsSinceStopsAtLastPage(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page := r.URL.Query().Get("p")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"itemsPerPage": 1, "page": %s, "total": 2, "setlist": [
			{"eventDate": "0%s-01-2025", "artist": {"name": "Ahab"},
			 "venue": {"name": "V", "city": {"name": "C", "country": {"name": "X"}}},
			 "sets": {"set": []}}
		]}`, page, page)
	}))
	defer server.Close()

	client := newClient(t, server)
	setlists, err := client.SetlistsSince(context.Background(), "Ahab", 10)
	if err != nil {
		t.Fatalf("SetlistsSince: %v", err)
	}
	if requests != 2 {
		t.Errorf("made %d requests, want 2", requests)
	}
	if len(setlists) != 2 {
		t.Errorf("got %d setlists, want 2: %v", len(setlists), setlists)
	}
}

func TestSetlistsSinceStopsAtYearCutoff(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		// Ancient setlists, many pages: the cutoff must stop after one page.
		w.Write([]byte(`{"itemsPerPage": 1, "page": 1, "total": 100, "setlist": [
			{"eventDate": "20-07-1991", "artist": {"name": "Death"},
			 "venue": {"name": "V", "city": {"name": "C", "country": {"name": "X"}}},
			 "sets": {"set": []}}
		]}`))
	}))
	defer server.Close()

	client := newClient(t, server)
	setlists, err := client.SetlistsSince(context.Background(), "Death", 5)
	if err != nil {
		t.Fatalf("SetlistsSince: %v", err)
	}
	if requests != 1 {
		t.Errorf("made %d requests, want 1 (cutoff reached)", requests)
	}
	if len(setlists) != 0 {
		t.Errorf("got %d setlists, want 0 (all before cutoff): %v", len(setlists), setlists)
	}
}
