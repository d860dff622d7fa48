// Package barcode canonicalizes linked-read barcodes against a whitelist.
//
// Barcode sequences carry sequencing errors like any other read bases.  An
// erroneous barcode fragments one physical droplet's evidence into several
// spurious barcodes, which both weakens the true barcode's tallies and
// inflates the multiplicity filter's noise floor.  Correcting barcodes that
// sit within edit distance one of exactly one whitelisted sequence recovers
// most of that signal without risking cross-droplet merges.
package barcode

// Distance computes the Levenshtein distance between two barcodes: the
// number of insertions, deletions, and substitutions it takes to transform
// one into the other.
func Distance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}
	// Two-row edit distance matrix; prev is row i-1, cur is row i.
	prev := make([]int, len(s2)+1)
	cur := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(s1); i++ {
		cur[0] = i
		for j := 1; j <= len(s2); j++ {
			if s1[i-1] == s2[j-1] {
				cur[j] = prev[j-1]
				continue
			}
			min := prev[j-1] // substitution
			if prev[j] < min {
				min = prev[j] // deletion from s1
			}
			if cur[j-1] < min {
				min = cur[j-1] // insertion into s1
			}
			cur[j] = min + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(s2)]
}
