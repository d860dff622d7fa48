// Package linkdist estimates the physical gap between pairs of assembly
// contigs from linked-read barcode evidence.
//
// The head and tail regions of a single contig sit at a known distance from
// each other (the contig length minus the two end regions), and the number of
// barcodes shared between those two regions falls off with that distance.
// This package turns every sufficiently long contig into one such calibration
// point, orders the points by barcode Jaccard score, and then reads distance
// intervals off that empirical curve for contig *pairs* whose separation is
// unknown.
package linkdist

// ContigID is a dense sequence number (1, 2, 3, ...) assigned to a contig
// name by a ContigSet.  IDs are valid only within one process invocation.
type ContigID int32

const invalidContigID = ContigID(0)

// End distinguishes the head region of a contig from its tail region.
type End uint8

const (
	// Head is the first EndLength bases of a contig.
	Head End = iota
	// Tail is the last EndLength bases of a contig.
	Tail
)

// Opposite returns the other end of the same contig.
func (e End) Opposite() End {
	if e == Head {
		return Tail
	}
	return Head
}

func (e End) String() string {
	if e == Head {
		return "H"
	}
	return "T"
}

// ContigEnd identifies one end region of one contig.  All per-end tallies are
// keyed by this composite value type.
type ContigEnd struct {
	ID  ContigID
	End End
}

// Orientation enumerates the four head/tail combinations in which the ends of
// two contigs can face each other.
type Orientation uint8

const (
	// HH joins the heads of both contigs.
	HH Orientation = iota
	// HT joins the head of the first contig to the tail of the second.
	HT
	// TH joins the tail of the first contig to the head of the second.
	TH
	// TT joins the tails of both contigs.
	TT
	// NumOrientations is the number of orientation variants per contig pair.
	NumOrientations = 4
)

// orientationOf returns the variant joining end e1 of the first contig of a
// canonical pair to end e2 of the second.
func orientationOf(e1, e2 End) Orientation {
	return Orientation(uint8(e1)<<1 | uint8(e2))
}

// Ends returns the end of the first contig and the end of the second contig
// described by this variant.
func (o Orientation) Ends() (End, End) {
	return End(uint8(o) >> 1), End(uint8(o) & 1)
}

func (o Orientation) String() string {
	e1, e2 := o.Ends()
	return e1.String() + e2.String()
}

// ContigPair is the canonical key for an unordered pair of contigs.
//
// INVARIANT: ID1 <= ID2.  A pair with ID1 == ID2 can appear in a PairMap when
// a barcode maps to both ends of one contig; downstream consumers skip such
// entries rather than this package filtering them out.
type ContigPair struct {
	ID1, ID2 ContigID
}
