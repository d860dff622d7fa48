package linkdist

// Stats summarizes one distance estimation run.
type Stats struct {
	// BarcodesSkipped is the # of barcodes whose multiplicity fell outside
	// [MinMult, MaxMult].
	BarcodesSkipped int
	// ObservationsSkipped is the # of (barcode, contig end) tallies rejected
	// by the eligibility predicate.
	ObservationsSkipped int
	// Samples is the # of intra-contig calibration samples built.
	Samples int
	// Pairs is the # of candidate contig pairs with at least one shared
	// barcode.
	Pairs int
	// EstimatesAttempted is the # of orientation variants handed to the
	// estimator; Estimates is the # that produced a distance interval.
	EstimatesAttempted int
	Estimates          int
}

// Merge adds the field values of the two Stats objects and creates new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.BarcodesSkipped += o.BarcodesSkipped
	s.ObservationsSkipped += o.ObservationsSkipped
	s.Samples += o.Samples
	s.Pairs += o.Pairs
	s.EstimatesAttempted += o.EstimatesAttempted
	s.Estimates += o.Estimates
	return s
}
