package recommend_test

import (
	"reflect"
	"testing"

	"moshpit/internal/recommend"
)

func TestMineFrequentItemsetsCountsSupports(t *testing.T) {
	transactions := [][]string{
		{"Amon Amarth", "Behemoth", "Carcass"},
		{"Amon Amarth", "Behemoth"},
		{"Amon Amarth", "Carcass"},
		{"Behemoth", "Carcass"},
		{"Amon Amarth", "Behemoth", "Carcass", "Deicide"},
	}

	itemsets := recommend.MineFrequentItemsets(transactions, 2, 3)

	want := map[string]int{
		"Amon Amarth":                  4,
		"Behemoth":                     4,
		"Carcass":                      4,
		"Amon Amarth\x1fBehemoth":      3,
		"Amon Amarth\x1fCarcass":       3,
		"Behemoth\x1fCarcass":          3,
		"Amon Amarth\x1fBehemoth\x1fCarcass": 2,
	}
	if len(itemsets) != len(want) {
		t.Fatalf("got %d itemsets, want %d: %v", len(itemsets), len(want), itemsets)
	}
	for _, itemset := range itemsets {
		support, ok := want[itemset.Key()]
		if !ok {
			t.Errorf("unexpected itemset %v", itemset.Items)
			continue
		}
		if itemset.Support != support {
			t.Errorf("itemset %v support = %d, want %d", itemset.Items, itemset.Support, support)
		}
	}
}

func TestMineFrequentItemsetsDropsInfrequentItems(t *testing.T) {
	transactions := [][]string{
		{"Gojira", "Mastodon"},
		{"Gojira", "Opeth"},
	}

	itemsets := recommend.MineFrequentItemsets(transactions, 2, 3)

	if len(itemsets) != 1 {
		t.Fatalf("got %d itemsets, want 1: %v", len(itemsets), itemsets)
	}
	if itemsets[0].Key() != "Gojira" || itemsets[0].Support != 2 {
		t.Errorf("got %v (support %d), want Gojira with support 2", itemsets[0].Items, itemsets[0].Support)
	}
}

func TestMineFrequentItemsetsRespectsMaxLen(t *testing.T) {
	transactions := [][]string{
		{"Bloodbath", "Dismember", "Entombed"},
		{"Bloodbath", "Dismember", "Entombed"},
	}

	itemsets := recommend.MineFrequentItemsets(transactions, 2, 2)

	for _, itemset := range itemsets {
		if len(itemset.Items) > 2 {
			t.Errorf("itemset %v exceeds max length 2", itemset.Items)
		}
	}
	// 3 singletons + 3 pairs, no triple.
	if len(itemsets) != 6 {
		t.Errorf("got %d itemsets, want 6", len(itemsets))
	}
}

func TestMineFrequentItemsetsDeterministicOrder(t *testing.T) {
	transactions := [][]string{
		{"Vader", "Unleashed"},
		{"Unleashed", "Vader"},
		{"Vader", "Watain"},
		{"Watain", "Unleashed"},
	}

	first := recommend.MineFrequentItemsets(transactions, 2, 3)
	second := recommend.MineFrequentItemsets(transactions, 2, 3)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs disagree:\n%v\n%v", first, second)
	}
	for i := 1; i < len(first); i++ {
		prev, curr := first[i-1], first[i]
		if curr.Support > prev.Support {
			t.Fatalf("itemsets not sorted by descending support at %d: %v", i, first)
		}
	}
}
