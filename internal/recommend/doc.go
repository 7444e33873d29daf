// Package recommend mines festival lineups for artist co-appearance patterns
// and turns them into festival recommendations.
//
// Lineups are treated as transactions: FP-Growth finds frequent artist
// itemsets, association rules are derived from them, and a festival is
// recommended for an artist when its lineup overlaps the artists the rules
// link to that artist. Jaccard similarity over the artist-festival matrix
// backs the co-appearance queries.
//
// Mining is deterministic: equal supports break ties lexicographically so
// repeated runs over the same data produce identical output.
package recommend
