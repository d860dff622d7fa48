package linkdist

import (
	"math"
	"runtime"
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// DistanceEstimate bounds the physical gap between two contig ends, together
// with the Jaccard score the bounds were read off at.
type DistanceEstimate struct {
	MinDist int
	MaxDist int
	Jaccard float64
}

// EstimateDistance maps one orientation variant of a contig pair to a
// distance interval using the calibration index.
//
// It returns ok=false when no estimate is possible: the index is empty (no contig anywhere was long enough to
// calibrate on), the variant's barcode union is zero (the pair never met
// eligibility), or no calibration sample falls within DistBinSize of the
// pair's Jaccard score.  These are expected conditions; the caller decides
// what an edge without a distance annotation means.
func EstimateDistance(rec *PairRecord, index *CalibrationIndex, opts *Opts) (DistanceEstimate, bool) {
	var est DistanceEstimate
	if index.Len() == 0 {
		return est, false
	}
	if rec.BarcodesUnion == 0 {
		return est, false
	}
	est.Jaccard = float64(rec.BarcodesIntersect) / float64(rec.BarcodesUnion)
	if est.Jaccard < 0 || est.Jaccard > 1 {
		// The union is derived as barcodes1+barcodes2-intersect, so a score
		// outside [0,1] means the builder undercounted the union.
		log.Panicf("jaccard score %g outside [0,1] (intersect %d, union %d)",
			est.Jaccard, rec.BarcodesIntersect, rec.BarcodesUnion)
	}
	dists := index.windowDistances(est.Jaccard, opts.DistBinSize)
	if len(dists) == 0 {
		return est, false
	}
	sort.Ints(dists)
	est.MinDist = int(math.Floor(quantile(dists, 0.01)))
	est.MaxDist = int(math.Ceil(quantile(dists, 0.99)))
	return est, true
}

// quantile returns the p-quantile of sorted, linearly interpolating between
// the two bracketing order statistics.
//
// REQUIRES: len(sorted) > 0, sorted ascending, 0 <= p <= 1.
func quantile(sorted []int, p float64) float64 {
	n := len(sorted)
	h := p * float64(n-1)
	i := int(math.Floor(h))
	if i >= n-1 {
		return float64(sorted[n-1])
	}
	frac := h - float64(i)
	return float64(sorted[i]) + frac*float64(sorted[i+1]-sorted[i])
}

// PairEstimate couples one orientation variant of a contig pair with its
// distance estimate.  OK is false when the estimator declined the variant.
type PairEstimate struct {
	Pair        ContigPair
	Orientation Orientation
	Rec         PairRecord
	Est         DistanceEstimate
	OK          bool
}

// EstimateAll evaluates every materialized orientation variant in pairs
// against the calibration index.  The estimator is a pure function of its
// inputs, so the variants are evaluated in parallel; results come back sorted
// by pair and orientation.
func EstimateAll(pairs PairMap, index *CalibrationIndex, opts *Opts, stats *Stats) []PairEstimate {
	all := make([]PairEstimate, 0, len(pairs))
	for pair, recs := range pairs {
		if pair.ID1 == pair.ID2 {
			continue
		}
		for i := range recs {
			if recs[i].Barcodes1 == 0 {
				continue
			}
			all = append(all, PairEstimate{Pair: pair, Orientation: Orientation(i), Rec: recs[i]})
		}
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	succeeded := make([]int, parallelism)
	err := traverse.Each(parallelism, func(jobIdx int) error {
		start := (jobIdx * len(all)) / parallelism
		end := ((jobIdx + 1) * len(all)) / parallelism
		for i := start; i < end; i++ {
			pe := &all[i]
			pe.Est, pe.OK = EstimateDistance(&pe.Rec, index, opts)
			if pe.OK {
				succeeded[jobIdx]++
			}
		}
		return nil
	})
	if err != nil {
		log.Panic(err)
	}

	sort.Slice(all, func(i, j int) bool {
		pi, pj := &all[i], &all[j]
		if pi.Pair != pj.Pair {
			if pi.Pair.ID1 != pj.Pair.ID1 {
				return pi.Pair.ID1 < pj.Pair.ID1
			}
			return pi.Pair.ID2 < pj.Pair.ID2
		}
		return pi.Orientation < pj.Orientation
	})

	stats.EstimatesAttempted += len(all)
	for _, n := range succeeded {
		stats.Estimates += n
	}
	return all
}
