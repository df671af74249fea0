package record

import "github.com/tlunder/biotext/pkg/rx"

// UniProt is one protein entry. The zero value is an empty, invalid
// record.
type UniProt struct {
	SequenceVersion uint8
	Evidence        ProteinEvidence
	Mass            uint64 // Daltons; 0 iff unknown
	Length          uint32 // residues
	Gene            string
	ID              string // accession
	Mnemonic        string
	Name            string
	Organism        string
	Proteome        string
	Sequence        string
	Taxonomy        string
	Section         Section
}

// EmptyUniProt returns the canonical empty record: every field at its
// zero value except Evidence, which carries the Unknown sentinel. An
// empty evidence cell parses back to Unknown, so this record is the
// fixed point of the delimited-text round trip.
func EmptyUniProt() *UniProt {
	return &UniProt{Evidence: Unknown}
}

// IsValid reports whether the record satisfies every invariant a
// writer relies on: version and evidence in range, a known mass, a
// sequence whose recorded length matches, and identifier fields that
// pass their regexes.
func (r *UniProt) IsValid() bool {
	if r.SequenceVersion < 1 || r.Evidence < ProteinLevel || r.Evidence >= Unknown {
		return false
	}
	if r.Mass == 0 {
		return false
	}
	if r.Sequence == "" || r.Name == "" || r.Organism == "" {
		return false
	}
	if int(r.Length) != len(r.Sequence) {
		return false
	}
	if !rx.Accession.ValidateString(r.ID) {
		return false
	}
	if !rx.Mnemonic.ValidateString(r.Mnemonic) {
		return false
	}
	if r.Gene != "" && !rx.Gene.ValidateString(r.Gene) {
		return false
	}
	if !rx.AminoAcid.ValidateString(r.Sequence) {
		return false
	}
	if r.Proteome != "" && !rx.Proteome.ValidateString(r.Proteome) {
		return false
	}
	if r.Taxonomy != "" && !rx.Taxonomy.ValidateString(r.Taxonomy) {
		return false
	}
	return true
}

// IsComplete reports validity plus the presence of the proteome and
// taxonomy fields.
func (r *UniProt) IsComplete() bool {
	return r.IsValid() &&
		r.Proteome != "" && rx.Proteome.ValidateString(r.Proteome) &&
		r.Taxonomy != "" && rx.Taxonomy.ValidateString(r.Taxonomy)
}
