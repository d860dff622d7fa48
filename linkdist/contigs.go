package linkdist

import (
	"bufio"
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// ContigSet interns contig names and records their lengths.  Thread
// compatible: build it fully before sharing it across goroutines.
type ContigSet struct {
	names   map[string]ContigID
	contigs []contigInfo // indexed by ContigID; slot 0 is unused
}

type contigInfo struct {
	name   string
	length int
}

// NewContigSet returns an empty ContigSet.
func NewContigSet() *ContigSet {
	return &ContigSet{
		names:   map[string]ContigID{},
		contigs: make([]contigInfo, 1),
	}
}

// Intern registers a contig and returns its dense ID.  Registering the same
// name twice is a fatal error; an assembly must not contain duplicate contig
// names.
func (s *ContigSet) Intern(name string, length int) ContigID {
	if _, ok := s.names[name]; ok {
		log.Panicf("duplicate contig name %q", name)
	}
	id := ContigID(len(s.contigs))
	s.names[name] = id
	s.contigs = append(s.contigs, contigInfo{name: name, length: length})
	return id
}

// ID returns the dense ID for a contig name, or invalidContigID if the name
// was never interned.
func (s *ContigSet) ID(name string) ContigID {
	return s.names[name]
}

// Name returns the name of the given contig.
//
// REQUIRES: id is valid.
func (s *ContigSet) Name(id ContigID) string {
	return s.contig(id).name
}

// Length returns the length in bases of the given contig.  Every contig
// referenced by barcode evidence must have a length; a miss here means the
// evidence and the assembly disagree, so it halts the run.
//
// REQUIRES: id is valid.
func (s *ContigSet) Length(id ContigID) int {
	return s.contig(id).length
}

func (s *ContigSet) contig(id ContigID) *contigInfo {
	if id <= invalidContigID || int(id) >= len(s.contigs) {
		log.Panicf("contig ID %d out of range [1,%d)", id, len(s.contigs))
	}
	return &s.contigs[int(id)]
}

// Len returns the number of contigs in the set.
func (s *ContigSet) Len() int { return len(s.contigs) - 1 }

// IDRange returns the half-open range of valid contig IDs.
func (s *ContigSet) IDRange() (ContigID, ContigID) {
	return 1, ContigID(len(s.contigs))
}

// ReadContigs reads an assembly FASTA (plain or gzipped) and returns a
// ContigSet holding the name and length of every sequence.  Sequence names
// are the characters after '>' up to the first whitespace; the bases
// themselves are only counted, never stored.
func ReadContigs(ctx context.Context, path string) (*ContigSet, error) {
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
	return scanContigs(reader, path)
}

func scanContigs(r io.Reader, path string) (*ContigSet, error) {
	var (
		set     = NewContigSet()
		name    string
		length  int
		started bool
	)
	flush := func() error {
		if !started {
			return nil
		}
		if set.ID(name) != invalidContigID {
			return errors.Errorf("%s: duplicate contig name %q", path, name)
		}
		set.Intern(name, length)
		return nil
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return nil, err
			}
			name = line[1:]
			for i := 0; i < len(name); i++ {
				if name[i] == ' ' || name[i] == '\t' {
					name = name[:i]
					break
				}
			}
			if name == "" {
				return nil, errors.Errorf("%s: FASTA record with empty name", path)
			}
			started = true
			length = 0
			continue
		}
		if !started {
			return nil, errors.Errorf("%s: sequence data before first FASTA header", path)
		}
		length += len(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return set, nil
}
