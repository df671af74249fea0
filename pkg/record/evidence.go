// Package record defines the typed record models shared by every
// codec: UniProt protein entries, SRA short reads, and mass spectra.
// Records are plain values; parsers always copy text out of their
// source buffers, so a record never borrows from a lexer.
package record

import "github.com/tlunder/biotext/pkg/codec"

// ProteinEvidence is the UniProt protein-existence level.
type ProteinEvidence uint8

// Evidence levels. Unknown is an internal sentinel for CSV cells that
// could not be interpreted; a record carrying it is never valid.
const (
	ProteinLevel    ProteinEvidence = 1
	TranscriptLevel ProteinEvidence = 2
	Inferred        ProteinEvidence = 3
	Predicted       ProteinEvidence = 4
	Unknown         ProteinEvidence = 5
)

// EvidenceFromInt converts a PE code from a FASTA header or CSV cell.
func EvidenceFromInt(v uint64) (ProteinEvidence, error) {
	if v < 1 || v > 5 {
		return Unknown, codec.Errorf(codec.KindInvalidEnumeration, "protein evidence %d out of range", v)
	}
	return ProteinEvidence(v), nil
}

// String returns the UniProt tab-export wording for the level, and ""
// for Unknown.
func (e ProteinEvidence) String() string {
	switch e {
	case ProteinLevel:
		return "Evidence at protein level"
	case TranscriptLevel:
		return "Evidence at transcript level"
	case Inferred:
		return "Inferred from homology"
	case Predicted:
		return "Predicted"
	default:
		return ""
	}
}

// EvidenceFromString is the inverse of String. Unrecognized wording
// maps to Unknown without error; the CSV representation is lossy.
func EvidenceFromString(s string) ProteinEvidence {
	switch s {
	case "Evidence at protein level":
		return ProteinLevel
	case "Evidence at transcript level":
		return TranscriptLevel
	case "Inferred from homology":
		return Inferred
	case "Predicted":
		return Predicted
	default:
		return Unknown
	}
}

// Section is the UniProt database section a record belongs to.
type Section uint8

const (
	SwissProt Section = iota // manually curated, sp| headers
	TrEMBL                   // automatically generated, tr| headers
)

func (s Section) String() string {
	if s == TrEMBL {
		return "tr"
	}
	return "sp"
}
