package linkdist

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDistSamples(t *testing.T) {
	ctx := vcontext.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	contigs := NewContigSet()
	c2 := contigs.Intern("c2", 400)
	c1 := contigs.Intern("c1", 300)
	samples := DistSampleMap{
		c1: &DistSample{Distance: 100, BarcodesHead: 2, BarcodesTail: 1, BarcodesUnion: 2, BarcodesIntersect: 1},
		c2: &DistSample{Distance: 200, BarcodesHead: 3, BarcodesTail: 3, BarcodesUnion: 4, BarcodesIntersect: 2},
	}

	path := filepath.Join(tempDir, "samples.tsv")
	require.NoError(t, WriteDistSamples(ctx, path, samples, contigs))

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"contig_id\tdistance\tbarcodes_head\tbarcodes_tail\tbarcodes_union\tbarcodes_intersect\n"+
			"c1\t100\t2\t1\t2\t1\n"+
			"c2\t200\t3\t3\t4\t2\n",
		string(data))
}

func TestWriteEstimates(t *testing.T) {
	ctx := vcontext.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	contigs := NewContigSet()
	a := contigs.Intern("A", 300)
	b := contigs.Intern("B", 400)
	ests := []PairEstimate{
		{
			Pair:        ContigPair{ID1: a, ID2: b},
			Orientation: HT,
			Rec:         PairRecord{Barcodes1: 10, Barcodes2: 8, BarcodesIntersect: 3, BarcodesUnion: 15},
			Est:         DistanceEstimate{MinDist: 80, MaxDist: 478, Jaccard: 0.2},
			OK:          true,
		},
		{
			Pair:        ContigPair{ID1: a, ID2: b},
			Orientation: TT,
			Rec:         PairRecord{Barcodes1: 1, Barcodes2: 1, BarcodesIntersect: 0, BarcodesUnion: 2},
		},
	}

	path := filepath.Join(tempDir, "estimates.tsv")
	require.NoError(t, WriteEstimates(ctx, path, ests, contigs))

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"contig1\tcontig2\torientation\tbarcodes1\tbarcodes2\tbarcodes_intersect\tbarcodes_union\tjaccard\testimated\tmin_dist\tmax_dist\n"+
			"A\tB\tHT\t10\t8\t3\t15\t0.2\tT\t80\t478\n"+
			"A\tB\tTT\t1\t1\t0\t2\t0\tF\t\t\n",
		string(data))
}
