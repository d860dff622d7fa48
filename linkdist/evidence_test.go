package linkdist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanEvidence(t *testing.T) {
	contigs := NewContigSet()
	c1 := contigs.Intern("c1", 300)
	c2 := contigs.Intern("c2", 400)

	in := strings.Join([]string{
		"# barcode\tcontig\tend\tread_pairs",
		"BX1\tc1\tH\t5",
		"BX1\tc1\tT\t4",
		"BX1\tc2\tH\t2",
		"BX2\tc2\tT\t9",
		"BX2\tc2\tT\t1", // same end tallied twice: counts add, multiplicity doesn't
		"",
	}, "\n")
	ev, err := scanEvidence(strings.NewReader(in), "tally.tsv", contigs, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, len(ev.Counts))
	assert.Equal(t, 5, ev.Counts["BX1"][ContigEnd{ID: c1, End: Head}])
	assert.Equal(t, 4, ev.Counts["BX1"][ContigEnd{ID: c1, End: Tail}])
	assert.Equal(t, 2, ev.Counts["BX1"][ContigEnd{ID: c2, End: Head}])
	assert.Equal(t, 10, ev.Counts["BX2"][ContigEnd{ID: c2, End: Tail}])
	assert.Equal(t, 3, ev.Multiplicity["BX1"])
	assert.Equal(t, 1, ev.Multiplicity["BX2"])
}

func TestScanEvidenceCorrection(t *testing.T) {
	contigs := NewContigSet()
	c1 := contigs.Intern("c1", 300)

	correct := func(bc string) string {
		if bc == "AAAT" {
			return "AAAA"
		}
		return bc
	}
	in := "AAAA\tc1\tH\t5\nAAAT\tc1\tH\t3\nAAAT\tc1\tT\t2\n"
	ev, err := scanEvidence(strings.NewReader(in), "tally.tsv", contigs, correct)
	require.NoError(t, err)

	// The corrected barcode's tallies merge into the canonical one.
	assert.Equal(t, 1, len(ev.Counts))
	assert.Equal(t, 8, ev.Counts["AAAA"][ContigEnd{ID: c1, End: Head}])
	assert.Equal(t, 2, ev.Counts["AAAA"][ContigEnd{ID: c1, End: Tail}])
	assert.Equal(t, 2, ev.Multiplicity["AAAA"])
}

func TestScanEvidenceErrors(t *testing.T) {
	contigs := NewContigSet()
	contigs.Intern("c1", 300)

	for _, in := range []string{
		"BX1\tc1\tH",             // too few columns
		"BX1\tc9\tH\t5",          // unknown contig
		"BX1\tc1\tX\t5",          // bad end flag
		"BX1\tc1\tH\tmany",       // bad count
		"BX1\tc1\tH\t-2",         // negative count
		"\tc1\tH\t5",             // empty barcode
	} {
		_, err := scanEvidence(strings.NewReader(in+"\n"), "tally.tsv", contigs, nil)
		assert.Error(t, err, "input: %q", in)
	}
}
