package barcode

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
)

func writeWhitelist(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data := ""
	for _, l := range lines {
		data += l + "\n"
	}
	assert.NoError(t, ioutil.WriteFile(path, []byte(data), 0600))
	return path
}

func TestReadWhitelist(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "whitelist")
	defer cleanup()
	ctx := vcontext.Background()

	path := writeWhitelist(t, dir, "wl.txt", []string{
		"# comment line",
		"ACGT",
		"TTTT",
		"ACGT", // duplicate, ignored
		"",
		"GGCC",
	})
	wl, err := ReadWhitelist(ctx, path)
	assert.NoError(t, err)
	expect.EQ(t, wl.Len(), 3)
	expect.True(t, wl.Contains("ACGT"))
	expect.True(t, wl.Contains("GGCC"))
	expect.False(t, wl.Contains("AAAA"))
}

func TestReadWhitelistGzip(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "whitelist")
	defer cleanup()
	ctx := vcontext.Background()

	path := filepath.Join(dir, "wl.txt.gz")
	out, err := os.Create(path)
	assert.NoError(t, err)
	gz := gzip.NewWriter(out)
	_, err = gz.Write([]byte("ACGT\nTTTT\n"))
	assert.NoError(t, err)
	assert.NoError(t, gz.Close())
	assert.NoError(t, out.Close())

	wl, err := ReadWhitelist(ctx, path)
	assert.NoError(t, err)
	expect.EQ(t, wl.Len(), 2)
	expect.True(t, wl.Contains("TTTT"))
}

func newTestWhitelist(t *testing.T, barcodes []string) *Whitelist {
	t.Helper()
	dir, cleanup := testutil.TempDir(t, "", "whitelist")
	defer cleanup()
	path := writeWhitelist(t, dir, "wl.txt", barcodes)
	wl, err := ReadWhitelist(vcontext.Background(), path)
	assert.NoError(t, err)
	return wl
}

func TestCorrectUniformLength(t *testing.T) {
	wl := newTestWhitelist(t, []string{"ACGTACGT", "TTTTTTTT", "GGGGCCCC"})

	// Exact hits come back verbatim.
	expect.EQ(t, wl.Correct("ACGTACGT"), "ACGTACGT")
	// One substitution from a unique entry.
	expect.EQ(t, wl.Correct("ACGAACGT"), "ACGTACGT")
	expect.EQ(t, wl.Correct("TTTTTTTA"), "TTTTTTTT")
	// More than one substitution away from everything: unchanged.
	expect.EQ(t, wl.Correct("ACGAACGA"), "ACGAACGA")
	// Length mismatch falls back to the scan path; an insertion away from a
	// unique entry still corrects.
	expect.EQ(t, wl.Correct("ACGTACG"), "ACGTACGT")
	expect.EQ(t, wl.Correct("AACGTACGT"), "ACGTACGT")
}

func TestCorrectAmbiguous(t *testing.T) {
	// AAAT is one substitution from both entries; correcting either way would
	// merge distinct droplets, so it must come back unchanged.
	wl := newTestWhitelist(t, []string{"AAAA", "AAGT"})
	expect.EQ(t, wl.Correct("AAAT"), "AAAT")
}

func TestCorrectMixedLengths(t *testing.T) {
	wl := newTestWhitelist(t, []string{"ACGT", "TTTTTT"})
	// Mixed lengths disable the substitution shortcut; the scan path must
	// still find unique distance-one matches of any edit type.
	expect.EQ(t, wl.Correct("ACGA"), "ACGT")
	expect.EQ(t, wl.Correct("TTTTT"), "TTTTTT")
	expect.EQ(t, wl.Correct("CCCC"), "CCCC")
}
