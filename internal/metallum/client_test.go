package metallum_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"moshpit/internal/fetch"
	"moshpit/internal/logging"
	"moshpit/internal/metallum"
	"moshpit/internal/testsupport"
)

const recommendationsHTML = `<table id="artist_list"><tbody>
<tr id="recRow_1">
  <td><a href="https://www.metal-archives.com/bands/Omnium_Gatherum/3465">Omnium Gatherum</a></td>
  <td>Finland</td>
  <td>Melodic Death Metal</td>
  <td><span>41</span></td>
</tr>
<tr id="recRow_2">
  <td><a href="https://www.metal-archives.com/bands/Dark_Tranquillity/71">Dark Tranquillity</a></td>
  <td>Sweden</td>
  <td>Melodic Death Metal</td>
  <td>28</td>
</tr>
<tr id="noMoreRows"><td colspan="4">no more</td></tr>
</tbody></table>`

func newClient(t *testing.T, server *httptest.Server) *metallum.Client {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.Metallum.BaseURL = server.URL
	fetcher := fetch.New(nil, cfg.Scrape, logging.NewNop())
	client, err := metallum.New(cfg.Metallum, fetcher, logging.NewNop())
	if err != nil {
		t.Fatalf("metallum.New: %v", err)
	}
	return client
}

func searchHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"aaData": [
		["<a href=\"https://www.metal-archives.com/bands/Insomnium_Tribute/99\">Insomnium Tribute</a>", "Melodic Death Metal", "Finland"],
		["<a href=\"https://www.metal-archives.com/bands/Insomnium/2432\">Insomnium</a>", "Melodic Death Metal", "Finland"]
	]}`))
}

func TestSearchBandPrefersExactMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/ajax-band-search/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		searchHandler(w, r)
	}))
	defer server.Close()

	client := newClient(t, server)
	band, err := client.SearchBand(context.Background(), "Insomnium")
	if err != nil {
		t.Fatalf("SearchBand: %v", err)
	}
	if band.ID != "2432" || band.Name != "Insomnium" {
		t.Errorf("band = %+v", band)
	}
}

func TestSearchBandNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"aaData": []}`))
	}))
	defer server.Close()

	client := newClient(t, server)
	if _, err := client.SearchBand(context.Background(), "Nonexistium"); !errors.Is(err, metallum.ErrBandNotFound) {
		t.Errorf("err = %v, want ErrBandNotFound", err)
	}
}

func TestSimilarArtistsParsesTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/ajax-band-search/":
			searchHandler(w, r)
		case "/band/ajax-recommendations/id/2432":
			if r.URL.Query().Get("showMoreSimilar") != "1" {
				t.Errorf("showMoreSimilar missing: %s", r.URL.RawQuery)
			}
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(recommendationsHTML))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newClient(t, server)
	similar, err := client.SimilarArtists(context.Background(), "Insomnium")
	if err != nil {
		t.Fatalf("SimilarArtists: %v", err)
	}

	if len(similar) != 2 {
		t.Fatalf("got %d artists, want 2: %v", len(similar), similar)
	}
	first := similar[0]
	if first.Name != "Omnium Gatherum" || first.Country != "Finland" || first.Score != 41 {
		t.Errorf("first = %+v", first)
	}
	if first.URL != "https://www.metal-archives.com/bands/Omnium_Gatherum/3465" {
		t.Errorf("URL = %q", first.URL)
	}
	if similar[1].Score != 28 {
		t.Errorf("second score = %v, want 28", similar[1].Score)
	}
}
