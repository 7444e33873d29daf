package recommend

import (
	"slices"
	"sort"
)

// Rule is one association rule between disjoint artist sets.
type Rule struct {
	Antecedents []string `json:"antecedents"`
	Consequents []string `json:"consequents"`
	Support     float64  `json:"support"`
	Confidence  float64  `json:"confidence"`
	Lift        float64  `json:"lift"`
}

// GenerateRules derives association rules from frequent itemsets. Every
// antecedent/consequent split of each itemset of size >= 2 is considered;
// rules below minLift are dropped. transactionCount converts supports into
// fractions. Output is sorted by descending lift, then descending confidence,
// then antecedent key.
func GenerateRules(itemsets []Itemset, transactionCount int, minLift float64) []Rule {
	if transactionCount <= 0 {
		return nil
	}

	supports := make(map[string]int, len(itemsets))
	for _, itemset := range itemsets {
		supports[itemset.Key()] = itemset.Support
	}

	total := float64(transactionCount)
	var rules []Rule
	for _, itemset := range itemsets {
		size := len(itemset.Items)
		if size < 2 {
			continue
		}
		setSupport := float64(itemset.Support) / total

		// Every non-empty proper subset as antecedent. Itemsets are bounded
		// by the rule-length cap, so the bitmask stays tiny.
		for mask := 1; mask < (1<<size)-1; mask++ {
			antecedent := make([]string, 0, size)
			consequent := make([]string, 0, size)
			for i, item := range itemset.Items {
				if mask&(1<<i) != 0 {
					antecedent = append(antecedent, item)
				} else {
					consequent = append(consequent, item)
				}
			}

			antSupport, ok := supports[itemsetKey(antecedent)]
			if !ok || antSupport == 0 {
				continue
			}
			conSupport, ok := supports[itemsetKey(consequent)]
			if !ok || conSupport == 0 {
				continue
			}

			confidence := float64(itemset.Support) / float64(antSupport)
			lift := confidence / (float64(conSupport) / total)
			if lift < minLift {
				continue
			}

			slices.Sort(antecedent)
			slices.Sort(consequent)
			rules = append(rules, Rule{
				Antecedents: antecedent,
				Consequents: consequent,
				Support:     setSupport,
				Confidence:  confidence,
				Lift:        lift,
			})
		}
	}

	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Lift != rules[j].Lift {
			return rules[i].Lift > rules[j].Lift
		}
		if rules[i].Confidence != rules[j].Confidence {
			return rules[i].Confidence > rules[j].Confidence
		}
		iKey := itemsetKey(rules[i].Antecedents) + "\x1e" + itemsetKey(rules[i].Consequents)
		jKey := itemsetKey(rules[j].Antecedents) + "\x1e" + itemsetKey(rules[j].Consequents)
		return iKey < jKey
	})
	return rules
}

// HasAntecedent reports whether artist is among the rule's antecedents.
func (r Rule) HasAntecedent(artist string) bool {
	return slices.Contains(r.Antecedents, artist)
}
