package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"moshpit/internal/dataset"
)

type cliTestEnv struct {
	baseDir    string
	dataDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		dataDir:    filepath.Join(base, "data"),
		configPath: filepath.Join(base, "config.toml"),
	}

	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\ncache_dir = %q\nlog_dir = %q\n\n[scrape]\nrequest_delay_ms = 1\n",
		env.dataDir,
		filepath.Join(base, "cache"),
		filepath.Join(base, "logs"),
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}

func seedFestivals(t *testing.T, env *cliTestEnv) {
	t.Helper()

	lineup := func(names ...string) []dataset.LineupEntry {
		entries := make([]dataset.LineupEntry, 0, len(names))
		for _, name := range names {
			entries = append(entries, dataset.LineupEntry{
				Name:  name,
				Genre: "Black Metal",
				URL:   "g-" + strings.ToLower(strings.ReplaceAll(name, " ", "-")),
			})
		}
		return entries
	}
	festivals := []dataset.Festival{
		{Name: "Graveland 2023", Artists: lineup("Agalloch", "Borknagar")},
		{Name: "Graveland 2024", Artists: lineup("Agalloch", "Borknagar")},
		{Name: "Stonehenge 2023", Artists: lineup("Agalloch", "Borknagar", "Cult of Luna")},
		{Name: "Tyrant 2023", Artists: lineup("Cult of Luna", "Drudkh")},
		{Name: "Tyrant 2024", Artists: lineup("Cult of Luna", "Drudkh")},
		{Name: "Mist 2023", Artists: lineup("Drudkh", "Enslaved")},
	}
	if err := dataset.SaveFestivals(env.dataDir, festivals); err != nil {
		t.Fatalf("seed festivals: %v", err)
	}
}

func TestRecommendMineAndQuery(t *testing.T) {
	env := setupCLITestEnv(t)
	seedFestivals(t, env)

	out, _, err := runCLI(t, env.configPath, "recommend", "mine", "--min-support", "2", "--max-length", "3")
	if err != nil {
		t.Fatalf("recommend mine: %v", err)
	}
	requireContains(t, out, "Mined")

	out, _, err = runCLI(t, env.configPath, "recommend", "summary")
	if err != nil {
		t.Fatalf("recommend summary: %v", err)
	}
	requireContains(t, out, "Festivals")
	requireContains(t, out, "6")

	out, _, err = runCLI(t, env.configPath, "recommend", "festivals", "Agalloch")
	if err != nil {
		t.Fatalf("recommend festivals: %v", err)
	}
	requireContains(t, out, "Graveland")
	requireContains(t, out, "Stonehenge")

	out, _, err = runCLI(t, env.configPath, "recommend", "coappear", "Agalloch")
	if err != nil {
		t.Fatalf("recommend coappear: %v", err)
	}
	requireContains(t, out, "Borknagar")

	out, _, err = runCLI(t, env.configPath, "--json", "recommend", "festivals", "Agalloch")
	if err != nil {
		t.Fatalf("recommend festivals --json: %v", err)
	}
	requireContains(t, out, `"festival"`)
}

func TestRecommendQueryWithoutMining(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env.configPath, "recommend", "summary"); err == nil {
		t.Fatal("expected error before mining")
	}
}

func TestTwinsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	seedFestivals(t, env)

	out, _, err := runCLI(t, env.configPath, "twins")
	if err != nil {
		t.Fatalf("twins: %v", err)
	}
	requireContains(t, out, "Agalloch")
	requireContains(t, out, "Borknagar")

	out, _, err = runCLI(t, env.configPath, "twins", "--matrix", "--top", "3")
	if err != nil {
		t.Fatalf("twins --matrix: %v", err)
	}
	requireContains(t, out, "Agalloch")
}

func TestToursCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	setlists := []dataset.Setlist{
		{Artist: "Moonspell", Tour: "Hermitage Tour", Country: "Portugal", EventDate: mustDate(t, "2022-02-20")},
		{Artist: "Moonspell", Tour: "Hermitage Tour", Country: "Spain", EventDate: mustDate(t, "2022-03-05")},
	}
	path := filepath.Join(env.dataDir, dataset.SetlistsFile)
	if err := dataset.SaveJSON(path, setlists); err != nil {
		t.Fatalf("seed setlists: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "tours")
	if err != nil {
		t.Fatalf("tours: %v", err)
	}
	requireContains(t, out, "Hermitage Tour")
	requireContains(t, out, "2022-02-20")
}

func TestToursCommandWithoutData(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, env.configPath, "tours")
	if err == nil || !strings.Contains(err.Error(), "fetch setlists") {
		t.Fatalf("expected fetch hint, got %v", err)
	}
}

func TestLyricsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	songs := []dataset.Song{
		{Artist: "Agalloch", Title: "One", Lyrics: "I wander through falling ashes alone"},
		{Artist: "Borknagar", Title: "Two", Lyrics: "I wander through frozen ashes alone"},
		{Artist: "Deicide", Title: "Three", Lyrics: "you you you burn burn burn burn burn"},
	}
	path := filepath.Join(env.dataDir, dataset.SongsFile)
	if err := dataset.SaveJSON(path, songs); err != nil {
		t.Fatalf("seed songs: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "lyrics", "Agalloch", "--top", "1")
	if err != nil {
		t.Fatalf("lyrics: %v", err)
	}
	requireContains(t, out, "Borknagar")
}

func TestCacheStatsAndPurge(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "Entries")

	out, _, err = runCLI(t, env.configPath, "cache", "purge", "--older-than-days", "0")
	if err != nil {
		t.Fatalf("cache purge: %v", err)
	}
	requireContains(t, out, "Removed")
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}
