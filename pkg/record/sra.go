package record

import "github.com/tlunder/biotext/pkg/rx"

// Sra is one short-read sequence entry.
type Sra struct {
	SeqID       string
	Description string
	Length      uint32
	Sequence    []byte // bases, ACGT case-insensitive
	Quality     []byte // Phred scores, printable ASCII
}

// IsValid reports whether the read is internally consistent: the
// recorded length matches both arrays and both arrays match their
// alphabets.
func (r *Sra) IsValid() bool {
	if r.SeqID == "" {
		return false
	}
	if int(r.Length) != len(r.Sequence) || len(r.Sequence) != len(r.Quality) {
		return false
	}
	return rx.Nucleotide.Validate(r.Sequence) && rx.Phred.Validate(r.Quality)
}

// IsComplete is IsValid plus a non-empty description.
func (r *Sra) IsComplete() bool {
	return r.IsValid() && r.Description != ""
}
