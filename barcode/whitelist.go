package barcode

import (
	"bufio"
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"v.io/x/lib/vlog"
)

// nucleotides are the substitution alphabet used when enumerating the edit
// neighborhood of a barcode.
const nucleotides = "ACGT"

// Whitelist is the set of barcode sequences the library preparation can
// legitimately produce.  Thread compatible: build it fully before sharing.
type Whitelist struct {
	entries map[string]struct{}
	list    []string
	// length is the common barcode length, or 0 if the whitelist mixes
	// lengths.  A uniform length enables the fast substitution-neighborhood
	// lookup in Correct.
	length int
}

// ReadWhitelist reads a whitelist file (plain or gzipped), one barcode per
// line.  Lines starting with '#' are skipped.
func ReadWhitelist(ctx context.Context, path string) (*Whitelist, error) {
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
	wl := &Whitelist{entries: map[string]struct{}{}, length: -1}
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		bc := scanner.Text()
		if len(bc) == 0 || bc[0] == '#' {
			continue
		}
		if _, ok := wl.entries[bc]; ok {
			continue
		}
		wl.entries[bc] = struct{}{}
		wl.list = append(wl.list, bc)
		switch wl.length {
		case -1:
			wl.length = len(bc)
		case len(bc):
		default:
			wl.length = 0
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if wl.length == -1 {
		wl.length = 0
	}
	vlog.VI(1).Infof("read %d whitelisted barcodes from %s", len(wl.list), path)
	return wl, nil
}

// Len returns the number of whitelisted barcodes.
func (wl *Whitelist) Len() int { return len(wl.list) }

// Contains reports whether bc is whitelisted verbatim.
func (wl *Whitelist) Contains(bc string) bool {
	_, ok := wl.entries[bc]
	return ok
}

// Correct returns the canonical form of bc: bc itself if whitelisted, the
// unique whitelist entry within edit distance one of bc if there is exactly
// one, and bc unchanged otherwise.  Ambiguous barcodes are deliberately left
// alone; merging them would join evidence from distinct droplets.
func (wl *Whitelist) Correct(bc string) string {
	if wl.Contains(bc) {
		return bc
	}
	if wl.length > 0 && len(bc) == wl.length {
		// Same length as the whitelist: the only possible distance-one edits
		// are substitutions, so probing the substitution neighborhood covers
		// the full candidate set.
		return wl.correctBySubstitution(bc)
	}
	return wl.correctByScan(bc)
}

func (wl *Whitelist) correctBySubstitution(bc string) string {
	var (
		hit   string
		nHits int
		buf   = []byte(bc)
	)
	for i := 0; i < len(buf); i++ {
		orig := buf[i]
		for j := 0; j < len(nucleotides); j++ {
			if nucleotides[j] == orig {
				continue
			}
			buf[i] = nucleotides[j]
			if _, ok := wl.entries[string(buf)]; ok {
				hit = string(buf)
				nHits++
			}
		}
		buf[i] = orig
	}
	if nHits == 1 {
		return hit
	}
	return bc
}

func (wl *Whitelist) correctByScan(bc string) string {
	var (
		hit   string
		nHits int
	)
	for _, cand := range wl.list {
		if Distance(bc, cand) <= 1 {
			hit = cand
			nHits++
			if nHits > 1 {
				break
			}
		}
	}
	if nHits == 1 {
		return hit
	}
	return bc
}
