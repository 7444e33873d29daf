package dataset_test

import (
	"testing"

	"moshpit/internal/dataset"
)

func TestFoldNameCollapsesWhitespaceAndCase(t *testing.T) {
	cases := []struct {
		a, b string
		same bool
	}{
		{"Be'lakor", "BE'LAKOR", true},
		{"  Dark   Tranquillity ", "dark tranquillity", true},
		{"Møl", "MØL", true},
		{"Insomnium", "Omnium Gatherum", false},
	}
	for _, tc := range cases {
		if got := dataset.SameName(tc.a, tc.b); got != tc.same {
			t.Errorf("SameName(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.same)
		}
	}
}
