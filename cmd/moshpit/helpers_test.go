package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveArtists(t *testing.T) {
	listPath := filepath.Join(t.TempDir(), "bands.csv")
	if err := os.WriteFile(listPath, []byte("Band;Genre\nBehemoth;Death Metal\nUlver;Avant-garde\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	// "behemoth" duplicates the file entry under name folding.
	artists, err := resolveArtists([]string{"Mgla", "behemoth"}, listPath)
	if err != nil {
		t.Fatalf("resolveArtists: %v", err)
	}
	want := []string{"Mgla", "behemoth", "Ulver"}
	if len(artists) != len(want) {
		t.Fatalf("artists = %v, want %v", artists, want)
	}
	for i := range want {
		if artists[i] != want[i] {
			t.Fatalf("artists = %v, want %v", artists, want)
		}
	}
}

func TestResolveArtistsEmpty(t *testing.T) {
	if _, err := resolveArtists(nil, ""); err == nil {
		t.Fatal("expected error for empty artist set")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" black metal, death metal ,,doom ")
	want := []string{"black metal", "death metal", "doom"}
	if len(got) != len(want) {
		t.Fatalf("splitList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("splitList = %v, want %v", got, want)
		}
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "festival"); got != "1 festival" {
		t.Errorf("pluralize = %q", got)
	}
	if got := pluralize(3, "festival"); got != "3 festivals" {
		t.Errorf("pluralize = %q", got)
	}
}
