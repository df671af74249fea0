package csvio

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/num"
	"github.com/tlunder/biotext/pkg/record"
)

func sampleRecord() *record.UniProt {
	return &record.UniProt{
		ID:              "P46406",
		Mnemonic:        "G3P_RABIT",
		Name:            "Glyceraldehyde-3-phosphate dehydrogenase",
		Organism:        "Oryctolagus cuniculus",
		Gene:            "GAPDH",
		Proteome:        "UP000001811",
		Taxonomy:        "9986",
		Evidence:        record.ProteinLevel,
		SequenceVersion: 3,
		Sequence:        strings.Repeat("ACDEFGHIKL", 7),
		Length:          70,
		Mass:            record.SequenceMass(strings.Repeat("ACDEFGHIKL", 7)),
	}
}

func TestEmptyRecordRow(t *testing.T) {
	empty := record.EmptyUniProt()
	out, err := Codec{}.ToString([]*record.UniProt{empty})
	require.NoError(t, err)

	want := strings.Join(Header, "\t") + "\n" +
		strings.Repeat("\t", len(Header)-1) + "\n"
	assert.Equal(t, want, out)

	// The all-empty row parses back to the canonical empty record.
	got, err := Codec{}.FromString(out)
	require.NoError(t, err)
	require.Len(t, got, 1)
	if diff := cmp.Diff(empty, got[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestHeaderEmittedOnce(t *testing.T) {
	out, err := Codec{}.ToString([]*record.UniProt{sampleRecord(), sampleRecord()})
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.Equal(t, 1, strings.Count(out, ColGeneNames))
}

func TestRoundTripTab(t *testing.T) {
	rec := sampleRecord()
	var c Codec
	out, err := c.ToString([]*record.UniProt{rec})
	require.NoError(t, err)

	got, err := c.FromString(out)
	require.NoError(t, err)
	require.Len(t, got, 1)
	if diff := cmp.Diff(rec, got[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripCommaThousands(t *testing.T) {
	rec := sampleRecord()
	c := Codec{Delim: ',', Thousands: true}
	out, err := c.ToString([]*record.UniProt{rec})
	require.NoError(t, err)

	// The mass cell carries a comma, so it must be quoted in CSV.
	cell := string(num.AppendUintThousands(nil, rec.Mass, ','))
	assert.Contains(t, cell, ",")
	assert.Contains(t, out, `"`+cell+`"`)

	got, err := c.FromString(out)
	require.NoError(t, err)
	require.Len(t, got, 1)
	if diff := cmp.Diff(rec, got[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestReadIsHeaderOrderIndependent(t *testing.T) {
	in := "Entry\tEntry name\tObsolete column\tSequence\n" +
		"P46406\tG3P_RABIT\tdiscarded\tMKV\n"
	recs, err := Codec{}.FromString(in)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "P46406", rec.ID)
	assert.Equal(t, "G3P_RABIT", rec.Mnemonic)
	assert.Equal(t, "MKV", rec.Sequence)
	// Absent numeric columns fall back to the sequence.
	assert.Equal(t, uint32(3), rec.Length)
	assert.Equal(t, record.SequenceMass("MKV"), rec.Mass)
	// Absent evidence is the sentinel, not a zero.
	assert.Equal(t, record.Unknown, rec.Evidence)
}

func TestProteomeCellExtraction(t *testing.T) {
	in := "Entry\tProteomes\n" +
		"P46406\tUP000001811: Chromosome 2\n"
	recs, err := Codec{}.FromString(in)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "UP000001811", recs[0].Proteome)

	_, err = Codec{}.FromString("Entry\tProteomes\nP46406\tnot-a-proteome\n")
	assert.True(t, codec.IsKind(err, codec.KindInvalidInput))
}

func TestMalformedNumericCell(t *testing.T) {
	in := "Entry\tLength\nP46406\ttwelve\n"
	_, err := Codec{}.FromString(in)
	assert.True(t, codec.IsKind(err, codec.KindInvalidInput))
}

func TestStrictWriterRefusesInvalid(t *testing.T) {
	bad := sampleRecord()
	bad.Length = 1

	out, err := Codec{Policy: codec.Strict}.ToString([]*record.UniProt{bad})
	assert.True(t, codec.IsKind(err, codec.KindInvalidRecord))
	assert.Empty(t, out)
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestBrokenSourceEndsIteration(t *testing.T) {
	_, err := Codec{}.FromStream(brokenReader{})
	assert.True(t, codec.IsKind(err, codec.KindIO))

	// Lenient collection over the same source must finish empty
	// instead of retrying the error forever.
	recs, err := Codec{Policy: codec.Lenient}.FromStream(brokenReader{})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLenientRowSkipping(t *testing.T) {
	in := "Entry\tLength\nP46406\ttwelve\nQ6GZX4\t10\n"
	recs, err := Codec{Policy: codec.Lenient}.FromString(in)
	require.NoError(t, err)
	// The malformed row is dropped; the second row parses but fails
	// validation (no sequence), so lenient drops it too.
	assert.Empty(t, recs)
}
