package rx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccession(t *testing.T) {
	for _, ok := range []string{"P46406", "Q9H400", "O75888", "A2BC19", "A0A023GPI8"} {
		assert.True(t, Accession.ValidateString(ok), ok)
	}
	for _, bad := range []string{"", "p46406", "P4640", "P4640X", "ZP46406", "P46406 "} {
		assert.False(t, Accession.ValidateString(bad), bad)
	}
}

func TestValidatorsAreAnchored(t *testing.T) {
	// A valid token with any unconsumed prefix or suffix must fail.
	assert.False(t, Accession.ValidateString("xP46406"))
	assert.False(t, Accession.ValidateString("P46406x"))
	assert.False(t, Taxonomy.ValidateString("9986 "))
	assert.False(t, Proteome.ValidateString(" UP000001811"))
	assert.False(t, AminoAcid.ValidateString("MVK VGV"))
}

func TestMnemonic(t *testing.T) {
	for _, ok := range []string{"G3P_RABIT", "ALBU_HUMAN", "A2BC19_9VIRU", "X_Y"} {
		assert.True(t, Mnemonic.ValidateString(ok), ok)
	}
	for _, bad := range []string{"G3PRABIT", "_RABIT", "G3P_", "TOOLONG_RABIT"} {
		assert.False(t, Mnemonic.ValidateString(bad), bad)
	}
}

func TestAminoAcid(t *testing.T) {
	assert.True(t, AminoAcid.ValidateString("MVKVGVNGFGRIGRLVTRAA"))
	assert.True(t, AminoAcid.ValidateString("mvkvgv"))
	// O is not a residue code.
	assert.False(t, AminoAcid.ValidateString("MVO"))
	assert.False(t, AminoAcid.ValidateString(""))
}

func TestProteomeExtract(t *testing.T) {
	groups := Proteome.ExtractString("UP000001811: Unplaced")
	require.NotNil(t, groups)
	assert.Equal(t, "UP000001811", groups[1])

	groups = Proteome.ExtractString("UP000001811: Chromosome 2")
	require.NotNil(t, groups)
	assert.Equal(t, "UP000001811", groups[1])

	groups = Proteome.ExtractString("UP000001811")
	require.NotNil(t, groups)
	assert.Equal(t, "UP000001811", groups[1])

	assert.Nil(t, Proteome.ExtractString("UP0001811"))
}

func TestSwissProtHeader(t *testing.T) {
	header := `>sp|P46406|G3P_RABIT Glyceraldehyde-3-phosphate dehydrogenase OS=Oryctolagus cuniculus GN=GAPDH PE=1 SV=3`
	groups := SwissProtHeader.ExtractString(header)
	require.NotNil(t, groups)
	assert.Equal(t, "P46406", groups[1])
	assert.Equal(t, "G3P_RABIT", groups[2])
	assert.Equal(t, "Glyceraldehyde-3-phosphate dehydrogenase", groups[3])
	assert.Equal(t, "Oryctolagus cuniculus", groups[4])
	assert.Empty(t, groups[5])
	assert.Equal(t, "GAPDH", groups[6])
	assert.Equal(t, "1", groups[7])
	assert.Equal(t, "3", groups[8])
}

func TestSwissProtHeaderWithTaxonomy(t *testing.T) {
	header := `>sp|P02769|ALBU_BOVIN Albumin OS=Bos taurus OX=9913 GN=ALB PE=1 SV=4`
	groups := SwissProtHeader.ExtractString(header)
	require.NotNil(t, groups)
	assert.Equal(t, "Bos taurus", groups[4])
	assert.Equal(t, "9913", groups[5])
	assert.Equal(t, "ALB", groups[6])
}

func TestSwissProtHeaderWithoutGene(t *testing.T) {
	header := `>sp|P46406|G3P_RABIT Glyceraldehyde-3-phosphate dehydrogenase OS=Oryctolagus cuniculus PE=1 SV=3`
	groups := SwissProtHeader.ExtractString(header)
	require.NotNil(t, groups)
	assert.Empty(t, groups[6])
}

func TestSwissProtHeaderRejectsMissingOrganism(t *testing.T) {
	assert.Nil(t, SwissProtHeader.ExtractString(`>sp|P46406|G3P_RABIT Some name PE=1 SV=3`))
}

func TestSwissProtHeaderRejectsEvidenceOutOfRange(t *testing.T) {
	assert.Nil(t, SwissProtHeader.ExtractString(
		`>sp|P46406|G3P_RABIT Name OS=Organism PE=6 SV=3`))
	assert.Nil(t, SwissProtHeader.ExtractString(
		`>sp|P46406|G3P_RABIT Name OS=Organism PE=0 SV=3`))
}

func TestTrEMBLHeaderAcceptsAccessionMnemonic(t *testing.T) {
	header := `>tr|A0A023GPI8|A0A023GPI8_CANBL Lectin OS=Canavalia boliviana PE=3 SV=1`
	groups := TrEMBLHeader.ExtractString(header)
	require.NotNil(t, groups)
	assert.Equal(t, "A0A023GPI8", groups[1])
	assert.Equal(t, "A0A023GPI8_CANBL", groups[2])
}

func TestMsConvertTitle(t *testing.T) {
	title := `TITLE=QPvivo_2015_11_10_1targetmethod.33450.33450.0 File:"QPvivo_2015_11_10_1targetmethod", NativeID:"controllerType=0 controllerNumber=1 scan=33450"`
	groups := MsConvertTitle.ExtractString(title)
	require.NotNil(t, groups)
	assert.Equal(t, "QPvivo_2015_11_10_1targetmethod", groups[1])
	assert.Equal(t, "33450", groups[3])
}

func TestPavaTitle(t *testing.T) {
	groups := PavaTitle.ExtractString(`TITLE=Scan 33450 (rt=8692.657303) [QPvivo_2015_11_10_1targetmethod]`)
	require.NotNil(t, groups)
	assert.Equal(t, "33450", groups[1])
	assert.Equal(t, "8692.657303", groups[2])
	assert.Equal(t, "QPvivo_2015_11_10_1targetmethod", groups[3])
}

func TestPwizTitle(t *testing.T) {
	groups := PwizTitle.ExtractString(`TITLE=run7 Spectrum0 scans: 104`)
	require.NotNil(t, groups)
	assert.Equal(t, "run7", groups[1])
	assert.Equal(t, "104", groups[2])
}

func TestPepmassAndCharge(t *testing.T) {
	groups := Pepmass.ExtractString("PEPMASS=775.15625 170643.953125")
	require.NotNil(t, groups)
	assert.Equal(t, "775.15625", groups[1])
	assert.Equal(t, "170643.953125", groups[2])

	groups = Pepmass.ExtractString("PEPMASS=775.15625")
	require.NotNil(t, groups)
	assert.Empty(t, groups[2])

	groups = Charge.ExtractString("CHARGE=4+")
	require.NotNil(t, groups)
	assert.Equal(t, "4", groups[1])
	assert.Equal(t, "+", groups[2])

	assert.Nil(t, Charge.ExtractString("CHARGE=4"))
}

func TestLazyCompileIsConcurrencySafe(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			assert.True(t, Taxonomy.ValidateString("9986"))
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
