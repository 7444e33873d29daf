package recommend

import (
	"slices"
	"sort"
	"strings"
)

// Itemset is a set of artists appearing together, with the number of lineups
// containing all of them.
type Itemset struct {
	Items   []string `json:"items"`
	Support int      `json:"support"`
}

// Key returns a stable identity for the itemset (items sorted, unit-separated).
func (s Itemset) Key() string {
	return itemsetKey(s.Items)
}

func itemsetKey(items []string) string {
	sorted := slices.Clone(items)
	slices.Sort(sorted)
	return strings.Join(sorted, "\x1f")
}

type fpNode struct {
	item     string
	count    int
	parent   *fpNode
	children map[string]*fpNode
	next     *fpNode
}

type fpTree struct {
	root    *fpNode
	heads   map[string]*fpNode
	tails   map[string]*fpNode
	counts  map[string]int
}

func newFPTree() *fpTree {
	return &fpTree{
		root:   &fpNode{children: make(map[string]*fpNode)},
		heads:  make(map[string]*fpNode),
		tails:  make(map[string]*fpNode),
		counts: make(map[string]int),
	}
}

func (t *fpTree) insert(items []string, count int) {
	node := t.root
	for _, item := range items {
		child, ok := node.children[item]
		if !ok {
			child = &fpNode{item: item, parent: node, children: make(map[string]*fpNode)}
			node.children[item] = child
			if t.heads[item] == nil {
				t.heads[item] = child
			} else {
				t.tails[item].next = child
			}
			t.tails[item] = child
		}
		child.count += count
		t.counts[item] += count
		node = child
	}
}

// itemsAscending returns the tree's items in ascending support order with
// lexicographic tie-breaks, the order FP-Growth peels suffixes in.
func (t *fpTree) itemsAscending() []string {
	items := make([]string, 0, len(t.counts))
	for item := range t.counts {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if t.counts[items[i]] != t.counts[items[j]] {
			return t.counts[items[i]] < t.counts[items[j]]
		}
		return items[i] < items[j]
	})
	return items
}

// transactionOrder sorts a transaction by descending support with
// lexicographic tie-breaks so shared prefixes compress into shared paths.
func transactionOrder(items []string, counts map[string]int) []string {
	ordered := slices.Clone(items)
	sort.Slice(ordered, func(i, j int) bool {
		if counts[ordered[i]] != counts[ordered[j]] {
			return counts[ordered[i]] > counts[ordered[j]]
		}
		return ordered[i] < ordered[j]
	})
	return ordered
}

// MineFrequentItemsets runs FP-Growth over the transactions. minSupport is an
// absolute transaction count; maxLen bounds itemset size. The result is
// sorted by descending support, then ascending size, then lexicographically.
func MineFrequentItemsets(transactions [][]string, minSupport, maxLen int) []Itemset {
	if minSupport < 1 {
		minSupport = 1
	}
	if maxLen < 1 {
		return nil
	}

	counts := make(map[string]int)
	for _, transaction := range transactions {
		for _, item := range transaction {
			counts[item]++
		}
	}

	tree := newFPTree()
	for _, transaction := range transactions {
		kept := make([]string, 0, len(transaction))
		for _, item := range transaction {
			if counts[item] >= minSupport {
				kept = append(kept, item)
			}
		}
		if len(kept) == 0 {
			continue
		}
		tree.insert(transactionOrder(kept, counts), 1)
	}

	var result []Itemset
	mineTree(tree, nil, minSupport, maxLen, &result)

	sort.Slice(result, func(i, j int) bool {
		if result[i].Support != result[j].Support {
			return result[i].Support > result[j].Support
		}
		if len(result[i].Items) != len(result[j].Items) {
			return len(result[i].Items) < len(result[j].Items)
		}
		return result[i].Key() < result[j].Key()
	})
	return result
}

func mineTree(tree *fpTree, suffix []string, minSupport, maxLen int, out *[]Itemset) {
	for _, item := range tree.itemsAscending() {
		support := tree.counts[item]
		if support < minSupport {
			continue
		}

		itemset := make([]string, 0, len(suffix)+1)
		itemset = append(itemset, item)
		itemset = append(itemset, suffix...)
		slices.Sort(itemset)
		*out = append(*out, Itemset{Items: itemset, Support: support})

		if len(itemset) >= maxLen {
			continue
		}

		conditional := newFPTree()
		for node := tree.heads[item]; node != nil; node = node.next {
			path := prefixPath(node)
			if len(path) > 0 {
				conditional.insert(path, node.count)
			}
		}
		if len(conditional.counts) > 0 {
			mineTree(conditional, itemset, minSupport, maxLen, out)
		}
	}
}

func prefixPath(node *fpNode) []string {
	var reversed []string
	for current := node.parent; current != nil && current.item != ""; current = current.parent {
		reversed = append(reversed, current.item)
	}
	slices.Reverse(reversed)
	return reversed
}
