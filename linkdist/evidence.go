package linkdist

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// EvidenceSet holds the output of the upstream alignment and tallying stage:
// which barcodes map to which contig ends, and how strongly.  It is read-only
// for the duration of a run; the sample builder and the pair statistics
// builder scan it independently.
type EvidenceSet struct {
	// Counts maps a barcode to the read-pair count observed connecting it to
	// each contig end.
	Counts map[string]map[ContigEnd]int
	// Multiplicity is the number of distinct contig ends each barcode maps
	// to.  It is kept separately from Counts because the upstream stage may
	// tally it over observations that never make it into Counts.
	Multiplicity map[string]int
}

// NewEvidenceSet returns an empty EvidenceSet.
func NewEvidenceSet() *EvidenceSet {
	return &EvidenceSet{
		Counts:       map[string]map[ContigEnd]int{},
		Multiplicity: map[string]int{},
	}
}

// Add accumulates read pairs connecting a barcode to a contig end and keeps
// the multiplicity table in step.
func (ev *EvidenceSet) Add(bc string, ce ContigEnd, readPairs int) {
	ends := ev.Counts[bc]
	if ends == nil {
		ends = map[ContigEnd]int{}
		ev.Counts[bc] = ends
	}
	if _, ok := ends[ce]; !ok {
		ev.Multiplicity[bc]++
	}
	ends[ce] += readPairs
}

// ReadEvidence reads a barcode tally file (plain or gzipped) produced by the
// upstream alignment stage.  The format is tab-separated with four columns:
//
//	barcode  contig  end(H|T)  read_pairs
//
// Lines starting with '#' are skipped.  Every contig must be present in
// contigs; a tally against an unknown contig means the evidence was built
// against a different assembly, which is unrecoverable.
//
// correct, if non-nil, canonicalizes each barcode before tallying (e.g.
// whitelist correction); tallies of barcodes that correct to the same string
// are merged.
func ReadEvidence(ctx context.Context, path string, contigs *ContigSet, correct func(string) string) (*EvidenceSet, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer in.Close(ctx) // nolint: errcheck
	reader := io.Reader(in.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		if reader, err = gzip.NewReader(reader); err != nil {
			return nil, errors.Wrapf(err, "gunzip %s", path)
		}
	}
	return scanEvidence(reader, path, contigs, correct)
}

func scanEvidence(r io.Reader, path string, contigs *ContigSet, correct func(string) string) (*EvidenceSet, error) {
	ev := NewEvidenceSet()
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) != 4 {
			return nil, errors.Errorf("%s:%d: expected 4 columns, got %d", path, lineno, len(cols))
		}
		bc := cols[0]
		if bc == "" {
			return nil, errors.Errorf("%s:%d: empty barcode", path, lineno)
		}
		id := contigs.ID(cols[1])
		if id == invalidContigID {
			return nil, errors.Errorf("%s:%d: contig %q not present in the assembly", path, lineno, cols[1])
		}
		var end End
		switch cols[2] {
		case "H":
			end = Head
		case "T":
			end = Tail
		default:
			return nil, errors.Errorf("%s:%d: bad end flag %q (want H or T)", path, lineno, cols[2])
		}
		readPairs, err := strconv.Atoi(cols[3])
		if err != nil || readPairs < 0 {
			return nil, errors.Errorf("%s:%d: bad read-pair count %q", path, lineno, cols[3])
		}
		if correct != nil {
			bc = correct(bc)
		}
		ev.Add(bc, ContigEnd{ID: id, End: end}, readPairs)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return ev, nil
}
