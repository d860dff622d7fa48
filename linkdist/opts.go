package linkdist

// Opts contains the tunables for distance estimation.
type Opts struct {
	// MinMult and MaxMult bound the barcode multiplicity (the number of
	// distinct contig ends a barcode maps to).  Barcodes below MinMult are
	// treated as sequencing noise; barcodes above MaxMult map to too many
	// places to carry positional signal.  Both bounds are inclusive.
	MinMult int
	MaxMult int
	// MinReads is the minimum number of read pairs connecting a barcode to a
	// contig end for the observation to be trusted.
	MinReads int
	// EndLength is the length in bases of the head and tail regions.  Contigs
	// shorter than 2*EndLength cannot provide a symmetric head/tail sample
	// and are excluded everywhere.
	EndLength int
	// DistBinSize is the half-width, in Jaccard score units, of the window of
	// calibration samples consulted for one distance estimate.
	DistBinSize float64
	// Parallelism bounds the number of workers used by the pair statistics
	// scan and the per-pair estimation loop.  <= 0 means one worker per CPU.
	Parallelism int
}

// DefaultOpts sets the default values for Opts.
var DefaultOpts = Opts{
	MinMult:     50,    // -min-mult
	MaxMult:     10000, // -max-mult
	MinReads:    5,     // -min-reads
	EndLength:   30000, // -end-length
	DistBinSize: 0.05,  // -dist-bin-size
}

// validMapping reports whether one (barcode, contig end) observation
// qualifies for statistical use.  The sample builder and the pair statistics
// builder must apply this exact predicate so that the calibration curve and
// the query pairs see the same population.
func (o *Opts) validMapping(contigLength, readPairs int) bool {
	if readPairs < o.MinReads {
		return false
	}
	if contigLength < 2*o.EndLength {
		return false
	}
	return true
}

// multOK reports whether a barcode's multiplicity lies within the informative
// range.
func (o *Opts) multOK(mult int) bool {
	return mult >= o.MinMult && mult <= o.MaxMult
}
