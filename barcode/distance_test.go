package barcode

import (
	"testing"

	"github.com/antzucaro/matchr"
)

// TestDistance checks our edit distance against an independent Levenshtein
// implementation, plus a few hand-verified cases.
func TestDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"ACGT", "", 4},
		{"", "ACGT", 4},
		{"ACGT", "ACGT", 0},
		{"ACGT", "AGGT", 1},
		{"ACGT", "CGT", 1},
		{"ACGT", "AACGT", 1},
		{"ACAATTGG", "AXAAXTGX", 3},
		{"ATATACGGT", "ACGGT", 4},
		{"CTCAGCGGCT", "AGCCTAACTC", 8},
	}
	for _, test := range tests {
		got := Distance(test.s1, test.s2)
		if got != test.want {
			t.Errorf("Distance(%q, %q): got %v, want %v", test.s1, test.s2, got, test.want)
		}
		ref := matchr.Levenshtein(test.s1, test.s2)
		if got != ref {
			t.Errorf("Distance(%q, %q): got %v, reference implementation %v", test.s1, test.s2, got, ref)
		}
	}
}
