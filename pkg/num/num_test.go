package num

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendUintThousands(t *testing.T) {
	tests := []struct {
		v    uint64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{35780, "35,780"},
		{1234567, "1,234,567"},
		{1000000000, "1,000,000,000"},
	}
	for _, tt := range tests {
		got := AppendUintThousands(nil, tt.v, ',')
		assert.Equal(t, tt.want, string(got))
	}
}

func TestParseUintThousands(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"35780", 35780},
		{"35,780", 35780},
		{"1,234,567", 1234567},
	}
	for _, tt := range tests {
		got, err := ParseUintThousands([]byte(tt.in), ',')
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseUintThousandsRejectsMisplacedSeparator(t *testing.T) {
	for _, in := range []string{",100", "100,", "12,34", "1,23,456", "1234,567", ""} {
		_, err := ParseUintThousands([]byte(in), ',')
		assert.Error(t, err, in)
	}
}

func TestNonzeroOrEmpty(t *testing.T) {
	assert.Empty(t, AppendNonzeroUint(nil, 0))
	assert.Equal(t, "42", string(AppendNonzeroUint(nil, 42)))
	assert.Empty(t, AppendNonzeroUintThousands(nil, 0, ','))

	v, err := ParseNonzeroUint(nil)
	require.NoError(t, err)
	assert.Zero(t, v)

	v, err = ParseNonzeroUint([]byte("17"))
	require.NoError(t, err)
	assert.Equal(t, uint64(17), v)
}

func TestFloatRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, 775.15625, 8692.657303, 170643.953125, 0.000001} {
		got, err := ParseFloat(AppendFloat(nil, v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestParseErrorsAreTagged(t *testing.T) {
	_, err := ParseUint([]byte("12a"))
	assert.Error(t, err)
	_, err = ParseFloat([]byte("x"))
	assert.Error(t, err)
}
