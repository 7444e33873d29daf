package recommend_test

import (
	"math"
	"testing"

	"moshpit/internal/recommend"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGenerateRulesConfidenceAndLift(t *testing.T) {
	// Four lineups: two share Kreator+Sodom, two share Tankard+Destruction.
	transactions := [][]string{
		{"Kreator", "Sodom"},
		{"Kreator", "Sodom"},
		{"Tankard", "Destruction"},
		{"Tankard", "Destruction"},
	}
	itemsets := recommend.MineFrequentItemsets(transactions, 2, 2)

	rules := recommend.GenerateRules(itemsets, len(transactions), 1.0)

	if len(rules) != 4 {
		t.Fatalf("got %d rules, want 4: %v", len(rules), rules)
	}
	for _, rule := range rules {
		if !almostEqual(rule.Confidence, 1.0) {
			t.Errorf("rule %v => %v confidence = %v, want 1.0", rule.Antecedents, rule.Consequents, rule.Confidence)
		}
		if !almostEqual(rule.Lift, 2.0) {
			t.Errorf("rule %v => %v lift = %v, want 2.0", rule.Antecedents, rule.Consequents, rule.Lift)
		}
		if !almostEqual(rule.Support, 0.5) {
			t.Errorf("rule %v => %v support = %v, want 0.5", rule.Antecedents, rule.Consequents, rule.Support)
		}
	}
}

func TestGenerateRulesFiltersByLift(t *testing.T) {
	// Overlapping lineups where no pair beats independence.
	transactions := [][]string{
		{"Emperor", "Immortal", "Mayhem"},
		{"Emperor", "Immortal"},
		{"Emperor", "Mayhem"},
		{"Immortal", "Mayhem"},
	}
	itemsets := recommend.MineFrequentItemsets(transactions, 2, 3)

	// Each pair: confidence 2/3, lift (2/3)/(3/4) = 8/9.
	if rules := recommend.GenerateRules(itemsets, len(transactions), 1.0); len(rules) != 0 {
		t.Errorf("got %d rules above lift 1.0, want 0: %v", len(rules), rules)
	}

	rules := recommend.GenerateRules(itemsets, len(transactions), 0)
	if len(rules) == 0 {
		t.Fatal("got no rules with lift filter disabled")
	}
	for _, rule := range rules {
		if len(rule.Antecedents)+len(rule.Consequents) == 2 && !almostEqual(rule.Lift, 8.0/9.0) {
			t.Errorf("pair rule %v => %v lift = %v, want 8/9", rule.Antecedents, rule.Consequents, rule.Lift)
		}
	}
}

func TestGenerateRulesSortedByLift(t *testing.T) {
	transactions := [][]string{
		{"Kreator", "Sodom"},
		{"Kreator", "Sodom"},
		{"Kreator", "Sodom", "Exodus"},
		{"Exodus", "Overkill"},
		{"Exodus", "Overkill"},
		{"Overkill", "Annihilator"},
	}
	itemsets := recommend.MineFrequentItemsets(transactions, 2, 3)

	rules := recommend.GenerateRules(itemsets, len(transactions), 0)
	for i := 1; i < len(rules); i++ {
		if rules[i].Lift > rules[i-1].Lift {
			t.Fatalf("rules not sorted by descending lift at %d: %v", i, rules)
		}
	}
}

func TestHasAntecedent(t *testing.T) {
	rule := recommend.Rule{Antecedents: []string{"Dissection", "Marduk"}, Consequents: []string{"Dark Funeral"}}
	if !rule.HasAntecedent("Marduk") {
		t.Error("HasAntecedent(Marduk) = false, want true")
	}
	if rule.HasAntecedent("Dark Funeral") {
		t.Error("HasAntecedent on a consequent returned true")
	}
}
