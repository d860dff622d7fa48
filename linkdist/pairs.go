package linkdist

import (
	"runtime"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	gunsafe "github.com/grailbio/base/unsafe"
)

// PairRecord holds the shared-barcode statistics for one orientation variant
// of a contig pair.
type PairRecord struct {
	// Barcodes1 and Barcodes2 count the distinct qualifying barcodes at the
	// two ends the variant joins.  Both are > 0 for every variant that was
	// materialized (see finalize).
	Barcodes1 int
	Barcodes2 int
	// BarcodesUnion = Barcodes1 + Barcodes2 - BarcodesIntersect.
	BarcodesUnion int
	// BarcodesIntersect counts the barcodes observed at both ends.
	BarcodesIntersect int
}

// PairRecords holds the four orientation variants of one contig pair,
// indexed by Orientation.
type PairRecords [NumOrientations]PairRecord

// PairMap maps a canonical contig pair to its orientation variants.  It is
// the input to downstream scaffold-graph construction.
type PairMap map[ContigPair]*PairRecords

// endTally counts the distinct qualifying barcodes per contig end,
// independent of pairing.
type endTally map[ContigEnd]int

// pairAccum accumulates pair statistics for a subset of barcodes.  Each
// worker in the sharded scan owns one accumulator; all counts are plain
// associative sums, so shards merge by addition.
type pairAccum struct {
	pairs PairMap
	ends  endTally
	stats Stats
}

func newPairAccum() *pairAccum {
	return &pairAccum{pairs: PairMap{}, ends: endTally{}}
}

// addBarcode folds one barcode's qualifying observations into the
// accumulator: every ordered observation pair with ID1 <= ID2 increments the
// shared count of the matching orientation variant, and every observation
// increments its end's distinct-barcode tally once.
//
// The scan is quadratic in the number of qualifying ends per barcode, which
// the multiplicity bounds keep small.
func (a *pairAccum) addBarcode(ends map[ContigEnd]int, contigs *ContigSet, opts *Opts) {
	obs := make([]ContigEnd, 0, len(ends))
	for ce, readPairs := range ends {
		if !opts.validMapping(contigs.Length(ce.ID), readPairs) {
			a.stats.ObservationsSkipped++
			continue
		}
		obs = append(obs, ce)
	}
	for _, e1 := range obs {
		a.ends[e1]++
		for _, e2 := range obs {
			// Keep only the canonical ordering so that (A,B) and (B,A) are
			// not both stored.  Pairs with e1.ID == e2.ID survive this check;
			// downstream consumers skip them.
			if e1.ID > e2.ID {
				continue
			}
			pair := ContigPair{ID1: e1.ID, ID2: e2.ID}
			recs := a.pairs[pair]
			if recs == nil {
				recs = &PairRecords{}
				a.pairs[pair] = recs
			}
			recs[orientationOf(e1.End, e2.End)].BarcodesIntersect++
		}
	}
}

// merge folds o into a by summing all counts.
func (a *pairAccum) merge(o *pairAccum) {
	for pair, orecs := range o.pairs {
		recs := a.pairs[pair]
		if recs == nil {
			a.pairs[pair] = orecs
			continue
		}
		for i := range recs {
			recs[i].BarcodesIntersect += orecs[i].BarcodesIntersect
		}
	}
	for ce, n := range o.ends {
		a.ends[ce] += n
	}
	a.stats = a.stats.Merge(o.stats)
}

// finalize fills Barcodes1/Barcodes2/BarcodesUnion for every orientation
// variant whose two ends both have distinct-barcode tallies.  A variant
// joining an end that no qualifying barcode ever touched stays zero-valued
// (its union of 0 makes the estimator decline it); but a variant that
// recorded shared barcodes for such an end signals a counting bug and halts
// the run.
func finalize(pairs PairMap, ends endTally, contigs *ContigSet) {
	for pair, recs := range pairs {
		for i := range recs {
			rec := &recs[i]
			end1, end2 := Orientation(i).Ends()
			b1, ok1 := ends[ContigEnd{ID: pair.ID1, End: end1}]
			b2, ok2 := ends[ContigEnd{ID: pair.ID2, End: end2}]
			if !ok1 || !ok2 {
				if rec.BarcodesIntersect > 0 {
					log.Panicf("pair %s/%s %s: %d shared barcodes but no per-end barcode tally",
						contigs.Name(pair.ID1), contigs.Name(pair.ID2), Orientation(i), rec.BarcodesIntersect)
				}
				continue
			}
			if b1+b2 < rec.BarcodesIntersect {
				log.Panicf("pair %s/%s %s: barcode union undercount (%d+%d < %d)",
					contigs.Name(pair.ID1), contigs.Name(pair.ID2), Orientation(i), b1, b2, rec.BarcodesIntersect)
			}
			rec.Barcodes1 = b1
			rec.Barcodes2 = b2
			rec.BarcodesUnion = b1 + b2 - rec.BarcodesIntersect
		}
	}
}

// BuildPairStats scans the barcode evidence and computes, for every candidate
// pair of contigs sharing at least one qualifying barcode, the shared and
// per-end distinct barcode counts of all four orientation variants.
//
// Barcodes are sharded by hash across opts.Parallelism workers; each worker
// accumulates privately and the shards are merged by summing, so the result
// is identical to a serial scan.
func BuildPairStats(ev *EvidenceSet, contigs *ContigSet, opts *Opts, stats *Stats) PairMap {
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	shards := make([][]string, parallelism)
	for bc := range ev.Counts {
		i := 0
		if parallelism > 1 {
			i = int(seahash.Sum64(gunsafe.StringToBytes(bc)) % uint64(parallelism))
		}
		shards[i] = append(shards[i], bc)
	}

	accums := make([]*pairAccum, parallelism)
	err := traverse.Each(parallelism, func(jobIdx int) error {
		accum := newPairAccum()
		for _, bc := range shards[jobIdx] {
			if !opts.multOK(ev.Multiplicity[bc]) {
				accum.stats.BarcodesSkipped++
				continue
			}
			accum.addBarcode(ev.Counts[bc], contigs, opts)
		}
		accums[jobIdx] = accum
		return nil
	})
	if err != nil {
		log.Panic(err)
	}

	total := accums[0]
	for _, accum := range accums[1:] {
		total.merge(accum)
	}
	finalize(total.pairs, total.ends, contigs)
	total.stats.Pairs = len(total.pairs)
	*stats = stats.Merge(total.stats)
	return total.pairs
}
