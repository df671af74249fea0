package fileio

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, name string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	payload := strings.Repeat(">sp|P46406|G3P_RABIT test\nMVKVGVNGFGRIGRLVTRAAF\n", 100)

	w, err := Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Equal(t, payload, string(got))
}

func TestPlainRoundTrip(t *testing.T) { roundTrip(t, "entries.fasta") }
func TestGzipRoundTrip(t *testing.T)  { roundTrip(t, "entries.fasta.gz") }
func TestZstdRoundTrip(t *testing.T)  { roundTrip(t, "entries.fasta.zst") }

func TestCompressionActuallyHappens(t *testing.T) {
	dir := t.TempDir()
	payload := strings.Repeat("ACGTACGTACGT\n", 5000)

	plain := filepath.Join(dir, "reads.fastq")
	gz := filepath.Join(dir, "reads.fastq.gz")
	for _, path := range []string{plain, gz} {
		w, err := Create(path)
		require.NoError(t, err)
		_, err = io.WriteString(w, payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}

	plainInfo, err := os.Stat(plain)
	require.NoError(t, err)
	gzInfo, err := os.Stat(gz)
	require.NoError(t, err)
	assert.Less(t, gzInfo.Size(), plainInfo.Size())
}

func TestOpenByMagicWithoutSuffix(t *testing.T) {
	dir := t.TempDir()
	payload := "BEGIN IONS\nTITLE=x\nEND IONS\n"

	// Write gzip bytes to a suffix-less name, then open by magic.
	gz := filepath.Join(dir, "scans.mgf.gz")
	w, err := Create(gz)
	require.NoError(t, err)
	_, err = io.WriteString(w, payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(gz)
	require.NoError(t, err)
	bare := filepath.Join(dir, "scans")
	require.NoError(t, os.WriteFile(bare, raw, 0o644))

	r, err := Open(bare)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, payload, string(got))
}

func TestWrapNamelessReader(t *testing.T) {
	rc := io.NopCloser(strings.NewReader("plain text"))
	r, err := Wrap(rc, "")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "plain text", string(got))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.fasta"))
	assert.Error(t, err)
}
