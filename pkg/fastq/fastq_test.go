package fastq

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/record"
)

const sampleRead = "@SRR390728.1 1 length=72\n" +
	"CATTCTTCACGTAGTTCTCGAGCCTTGGTTTTCAGCGATGGAGAATGACTTTGACAAGCTGAGAGAAGATAC\n" +
	"+\n" +
	";;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;9;;665142;;;;;;;;!;!;"

func TestParse(t *testing.T) {
	rec, err := Parse([]byte(sampleRead))
	require.NoError(t, err)

	assert.Equal(t, "SRR390728.1", rec.SeqID)
	assert.Equal(t, "1 length=72", rec.Description)
	assert.Equal(t, uint32(72), rec.Length)
	assert.Len(t, rec.Quality, 72)
	assert.True(t, rec.IsValid())
	assert.True(t, rec.IsComplete())
}

func TestParseNoDescription(t *testing.T) {
	rec, err := Parse([]byte("@r1\nACGT\n+\nIIII"))
	require.NoError(t, err)
	assert.Equal(t, "r1", rec.SeqID)
	assert.Empty(t, rec.Description)
	assert.True(t, rec.IsValid())
	assert.False(t, rec.IsComplete())
}

func TestParseRejects(t *testing.T) {
	_, err := Parse([]byte("r1\nACGT\n+\nIIII"))
	assert.True(t, codec.IsKind(err, codec.KindInvalidInput))

	_, err = Parse([]byte("@r1\nACGT\nIIII\n+"))
	assert.True(t, codec.IsKind(err, codec.KindInvalidInput))

	_, err = Parse([]byte("@r1\nACGT\n+\nIII"))
	assert.True(t, codec.IsKind(err, codec.KindInvalidInput))

	_, err = Parse([]byte("@r1\nACGT\n+"))
	assert.True(t, codec.IsKind(err, codec.KindUnexpectedEOF))
}

func TestAppendInvertsParse(t *testing.T) {
	rec, err := Parse([]byte(sampleRead))
	require.NoError(t, err)
	assert.Equal(t, sampleRead, string(Append(nil, rec)))
}

func TestRoundTrip(t *testing.T) {
	in := sampleRead + "\n@SRR390728.2 2 length=4\nACGT\n+\nIII;\n"
	var c Codec
	recs, err := c.FromString(in)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	out, err := c.ToString(recs)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(in, "\n"), out)

	again, err := c.FromString(out)
	require.NoError(t, err)
	if diff := cmp.Diff(recs, again); diff != "" {
		t.Errorf("read mismatch (-want +got):\n%s", diff)
	}
}

func TestAmbiguousBasesAreInvalid(t *testing.T) {
	// N is a legal FASTQ byte but not a nucleotide; the read parses
	// and fails validation.
	rec, err := Parse([]byte("@r1\nACGN\n+\nIIII"))
	require.NoError(t, err)
	assert.False(t, rec.IsValid())
}

func TestStrictRejectsNonNucleotideSequence(t *testing.T) {
	recs, err := Codec{Policy: codec.Strict}.FromString("@r1\nACXT\n+\nIIII\n")
	assert.True(t, codec.IsKind(err, codec.KindInvalidRecord))
	assert.Empty(t, recs)
}

func TestLenientDropsBadReads(t *testing.T) {
	in := "@r1\nACXT\n+\nIIII\n@r2\nACGT\n+\nIIII\n"
	recs, err := Codec{Policy: codec.Lenient}.FromString(in)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "r2", recs[0].SeqID)
}

func TestWriterSkipsLengthMismatch(t *testing.T) {
	bad := &record.Sra{SeqID: "r1", Sequence: []byte("ACGT"), Quality: []byte("III"), Length: 4}
	out, err := Codec{Policy: codec.Lenient}.ToString([]*record.Sra{bad})
	require.NoError(t, err)
	assert.Empty(t, out)
}
