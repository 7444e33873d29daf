package dataset

import (
	"strings"

	"golang.org/x/text/cases"
)

var nameFolder = cases.Fold()

// FoldName normalizes an artist name for cross-platform matching: collapsed
// whitespace and Unicode case folding, so "BE'LAKOR" and "Be'lakor" compare
// equal without mangling non-ASCII names.
func FoldName(name string) string {
	collapsed := strings.Join(strings.Fields(name), " ")
	return nameFolder.String(collapsed)
}

// SameName reports whether two artist names match after folding.
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}
