package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"moshpit/internal/config"
	"moshpit/internal/dataset"
)

// resolveArtists merges positional artist names with an optional list file.
func resolveArtists(args []string, listPath string) ([]string, error) {
	var artists []string
	seen := map[string]struct{}{}
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		key := dataset.FoldName(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		artists = append(artists, name)
	}

	for _, arg := range args {
		add(arg)
	}
	if listPath = strings.TrimSpace(listPath); listPath != "" {
		fromFile, err := dataset.ReadArtistList(listPath)
		if err != nil {
			return nil, err
		}
		for _, name := range fromFile {
			add(name)
		}
	}
	if len(artists) == 0 {
		return nil, errors.New("no artists given; pass names as arguments or --artists FILE")
	}
	return artists, nil
}

// splitList parses a comma-separated flag value into trimmed entries.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func loadFestivals(cfg *config.Config) ([]dataset.Festival, error) {
	festivals, err := dataset.LoadFestivals(cfg.Paths.DataDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.New("no festival data found; run `moshpit fetch festivals` first")
		}
		return nil, err
	}
	if len(festivals) == 0 {
		return nil, errors.New("festival data is empty; run `moshpit fetch festivals` first")
	}
	return festivals, nil
}

func loadSetlists(cfg *config.Config) ([]dataset.Setlist, error) {
	var setlists []dataset.Setlist
	path := filepath.Join(cfg.Paths.DataDir, dataset.SetlistsFile)
	if err := dataset.LoadJSON(path, &setlists); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.New("no setlist data found; run `moshpit fetch setlists` first")
		}
		return nil, err
	}
	return setlists, nil
}

func loadSongs(cfg *config.Config) ([]dataset.Song, error) {
	var songs []dataset.Song
	path := filepath.Join(cfg.Paths.DataDir, dataset.SongsFile)
	if err := dataset.LoadJSON(path, &songs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.New("no lyric data found; run `moshpit fetch lyrics` first")
		}
		return nil, err
	}
	return songs, nil
}

func recommenderPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.DataDir, dataset.RecommenderFile)
}

func requireOneArtist(args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", errors.New("exactly one artist name required")
	}
	return strings.TrimSpace(args[0]), nil
}

func pluralize(count int, singular string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %ss", count, singular)
}
