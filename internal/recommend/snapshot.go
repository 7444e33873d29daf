package recommend

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// snapshotVersion guards against loading snapshots written by incompatible
// builds.
const snapshotVersion = 1

type snapshot struct {
	Version   int                 `json:"version"`
	Settings  MiningSettings      `json:"settings"`
	Festivals map[string][]string `json:"festivals"`
	Itemsets  []Itemset           `json:"itemsets"`
	Rules     []Rule              `json:"rules"`
}

// Save writes the mined state to path as JSON. The file is written to a
// temporary sibling first so a crash never leaves a truncated snapshot.
func (r *Recommender) Save(path string) error {
	if len(r.festivals) == 0 {
		return ErrNotMined
	}

	snap := snapshot{
		Version:   snapshotVersion,
		Settings:  r.settings,
		Festivals: r.festivals,
		Itemsets:  r.itemsets,
		Rules:     r.rules,
	}
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode recommender snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write recommender snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace recommender snapshot: %w", err)
	}
	return nil
}

// Load restores mined state from a snapshot written by Save.
func (r *Recommender) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read recommender snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return fmt.Errorf("decode recommender snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("recommender snapshot version %d, want %d", snap.Version, snapshotVersion)
	}
	if len(snap.Festivals) == 0 {
		return fmt.Errorf("recommender snapshot %s holds no festivals", path)
	}

	names := make([]string, 0, len(snap.Festivals))
	for name := range snap.Festivals {
		names = append(names, name)
	}
	sort.Strings(names)

	r.festivals = snap.Festivals
	r.festivalNames = names
	r.itemsets = snap.Itemsets
	r.rules = snap.Rules
	r.settings = snap.Settings
	return nil
}
