package linkdist

import (
	"math"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/base/log"
)

// calKey orders calibration samples by Jaccard score inside the llrb tree.
// seq breaks ties so that samples with equal scores coexist instead of
// replacing each other on insert.
type calKey struct {
	jaccard float64
	seq     int
	sample  *DistSample
}

// Compare compares two calKey objects for use in llrb.
func (k calKey) Compare(c llrb.Comparable) int {
	k2 := c.(calKey)
	switch {
	case k.jaccard < k2.jaccard:
		return -1
	case k.jaccard > k2.jaccard:
		return 1
	}
	return k.seq - k2.seq
}

// CalibrationIndex is an ordered Jaccard score -> calibration sample index.
// It is built once from the sample builder's output and read-only afterward.
type CalibrationIndex struct {
	tree llrb.Tree
	n    int
}

// BuildCalibrationIndex orders the calibration samples by Jaccard score.
//
// The sample builder only ever emits samples with a nonzero barcode union, so
// a zero union here denotes a calibration point with no signal at all and
// halts the run rather than inserting a NaN key.
func BuildCalibrationIndex(samples DistSampleMap, contigs *ContigSet) *CalibrationIndex {
	index := &CalibrationIndex{}
	for id, s := range samples {
		if s.BarcodesUnion == 0 {
			log.Panicf("contig %s: calibration sample with zero barcode union", contigs.Name(id))
		}
		jaccard := float64(s.BarcodesIntersect) / float64(s.BarcodesUnion)
		index.tree.Insert(calKey{jaccard: jaccard, seq: index.n, sample: s})
		index.n++
	}
	return index
}

// Len returns the number of samples in the index.
func (x *CalibrationIndex) Len() int {
	if x == nil {
		return 0
	}
	return x.n
}

// windowDistances collects the known distances of every sample whose Jaccard
// score lies within [score-halfWidth, score+halfWidth], in score order.  The
// seq sentinels make the interval closed on both sides regardless of ties.
func (x *CalibrationIndex) windowDistances(score, halfWidth float64) []int {
	var dists []int
	lo := calKey{jaccard: score - halfWidth, seq: -1}
	hi := calKey{jaccard: score + halfWidth, seq: math.MaxInt32}
	x.tree.DoRange(func(c llrb.Comparable) (done bool) {
		dists = append(dists, c.(calKey).sample.Distance)
		return
	}, lo, hi)
	return dists
}
