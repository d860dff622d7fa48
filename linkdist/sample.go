package linkdist

// DistSample records the known head-to-tail distance of one contig together
// with the barcode overlap statistics of its two end regions.  Because the
// distance is fixed by the contig length, each sample is one ground-truth
// point on the "barcode sharing vs. physical distance" curve.
type DistSample struct {
	// Distance is the gap between the head and tail regions: contig length
	// minus 2*EndLength.
	Distance int
	// BarcodesHead and BarcodesTail count the distinct qualifying barcodes
	// observed at each end.
	BarcodesHead int
	BarcodesTail int
	// BarcodesUnion and BarcodesIntersect are direct set counts over
	// qualifying barcodes: a barcode seen at one end adds one to the union; a
	// barcode seen at both ends adds one to the union and one to the
	// intersection.
	BarcodesUnion     int
	BarcodesIntersect int
}

// DistSampleMap maps a contig to its calibration sample.
type DistSampleMap map[ContigID]*DistSample

// BuildDistSamples scans the barcode evidence and produces one calibration
// sample per contig that is long enough to carry a symmetric head/tail signal
// and has at least one qualifying barcode observation.
//
// For each multiplicity-qualifying barcode, both ends of each touched contig
// are examined together, so a barcode mapping to both ends contributes
// exactly one union increment and one intersection increment.
func BuildDistSamples(ev *EvidenceSet, contigs *ContigSet, opts *Opts, stats *Stats) DistSampleMap {
	samples := DistSampleMap{}
	for bc, ends := range ev.Counts {
		if !opts.multOK(ev.Multiplicity[bc]) {
			stats.BarcodesSkipped++
			continue
		}
		done := map[ContigID]bool{}
		for ce := range ends {
			if done[ce.ID] {
				continue
			}
			done[ce.ID] = true
			length := contigs.Length(ce.ID)
			headPairs, headSeen := ends[ContigEnd{ID: ce.ID, End: Head}]
			tailPairs, tailSeen := ends[ContigEnd{ID: ce.ID, End: Tail}]
			headOK := headSeen && opts.validMapping(length, headPairs)
			tailOK := tailSeen && opts.validMapping(length, tailPairs)
			if headSeen && !headOK {
				stats.ObservationsSkipped++
			}
			if tailSeen && !tailOK {
				stats.ObservationsSkipped++
			}
			if !headOK && !tailOK {
				continue
			}
			s := samples[ce.ID]
			if s == nil {
				s = &DistSample{Distance: length - 2*opts.EndLength}
				samples[ce.ID] = s
			}
			if headOK {
				s.BarcodesHead++
			}
			if tailOK {
				s.BarcodesTail++
			}
			s.BarcodesUnion++
			if headOK && tailOK {
				s.BarcodesIntersect++
			}
		}
	}
	stats.Samples += len(samples)
	return samples
}
