package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Well-known file names under the data directory.
const (
	FestivalsFile   = "festivals.json"
	SetlistsFile    = "setlists.json"
	SongsFile       = "songs.json"
	RecommenderFile = "recommender.json"
)

// SaveJSON writes v as indented JSON, creating parent directories as needed.
func SaveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// LoadJSON reads path into v.
func LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes a header row and data rows to path.
func WriteCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// ReadArtistList reads artist names from a CSV or plain text file. Band lists
// floating around this project use ';' as a delimiter and a "Band" header
// column, so both comma and semicolon layouts are accepted; a file without a
// recognized header is treated as one name per line.
func ReadArtistList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) == 0 {
		return nil, errors.New("empty artist list")
	}

	delimiter := byte(',')
	if strings.Count(lines[0], ";") > strings.Count(lines[0], ",") {
		delimiter = ';'
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = rune(delimiter)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty artist list")
	}

	column := 0
	start := 0
	for i, field := range records[0] {
		name := strings.ToLower(strings.TrimSpace(field))
		if name == "band" || name == "artist" || name == "name" {
			column = i
			start = 1
			break
		}
	}

	var artists []string
	seen := map[string]struct{}{}
	for _, record := range records[start:] {
		if column >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[column])
		if name == "" {
			continue
		}
		key := FoldName(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		artists = append(artists, name)
	}
	if len(artists) == 0 {
		return nil, errors.New("no artist names found")
	}
	return artists, nil
}

// SaveFestivals writes festivals to the conventional file under dataDir.
func SaveFestivals(dataDir string, festivals []Festival) error {
	return SaveJSON(filepath.Join(dataDir, FestivalsFile), festivals)
}

// LoadFestivals reads festivals from the conventional file under dataDir.
func LoadFestivals(dataDir string) ([]Festival, error) {
	var festivals []Festival
	if err := LoadJSON(filepath.Join(dataDir, FestivalsFile), &festivals); err != nil {
		return nil, err
	}
	return festivals, nil
}
