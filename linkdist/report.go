package linkdist

import (
	"context"
	"sort"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
)

// WriteDistSamples writes the calibration samples as a TSV report, one row
// per contig, sorted by contig name.
func WriteDistSamples(ctx context.Context, path string, samples DistSampleMap, contigs *ContigSet) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	w := tsv.NewWriter(out.Writer(ctx))

	e := errors.Once{}
	w.WriteString("contig_id\tdistance\tbarcodes_head\tbarcodes_tail\tbarcodes_union\tbarcodes_intersect")
	e.Set(w.EndLine())

	ids := make([]ContigID, 0, len(samples))
	for id := range samples {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return contigs.Name(ids[i]) < contigs.Name(ids[j]) })

	for _, id := range ids {
		s := samples[id]
		w.WriteString(contigs.Name(id))
		w.WriteInt64(int64(s.Distance))
		w.WriteInt64(int64(s.BarcodesHead))
		w.WriteInt64(int64(s.BarcodesTail))
		w.WriteInt64(int64(s.BarcodesUnion))
		w.WriteInt64(int64(s.BarcodesIntersect))
		e.Set(w.EndLine())
	}
	e.Set(w.Flush())
	e.Set(out.Close(ctx))
	return e.Err()
}

// WriteEstimates writes one TSV row per estimated orientation variant.  Rows
// the estimator declined carry an "F" in the estimated column and empty
// distance bounds.
func WriteEstimates(ctx context.Context, path string, ests []PairEstimate, contigs *ContigSet) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	w := tsv.NewWriter(out.Writer(ctx))

	e := errors.Once{}
	w.WriteString("contig1\tcontig2\torientation\tbarcodes1\tbarcodes2\tbarcodes_intersect\tbarcodes_union\tjaccard\testimated\tmin_dist\tmax_dist")
	e.Set(w.EndLine())

	for i := range ests {
		pe := &ests[i]
		w.WriteString(contigs.Name(pe.Pair.ID1))
		w.WriteString(contigs.Name(pe.Pair.ID2))
		w.WriteString(pe.Orientation.String())
		w.WriteInt64(int64(pe.Rec.Barcodes1))
		w.WriteInt64(int64(pe.Rec.Barcodes2))
		w.WriteInt64(int64(pe.Rec.BarcodesIntersect))
		w.WriteInt64(int64(pe.Rec.BarcodesUnion))
		w.WriteString(strconv.FormatFloat(pe.Est.Jaccard, 'g', -1, 64))
		if pe.OK {
			w.WriteString("T")
			w.WriteInt64(int64(pe.Est.MinDist))
			w.WriteInt64(int64(pe.Est.MaxDist))
		} else {
			w.WriteString("F")
			w.WriteString("")
			w.WriteString("")
		}
		e.Set(w.EndLine())
	}
	e.Set(w.Flush())
	e.Set(out.Close(ctx))
	return e.Err()
}
