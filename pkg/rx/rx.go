// Package rx holds the anchored regular expressions that validate
// record identifiers and pick fields out of format headers. Every
// pattern is compiled at most once per process, on first use; the
// compile is idempotent so concurrent first-touch is safe.
package rx

import (
	"regexp"
	"sync"
)

// Re is a lazily compiled anchored pattern.
type Re struct {
	compile func() *regexp.Regexp
}

func anchored(pattern string) *Re {
	return &Re{compile: sync.OnceValue(func() *regexp.Regexp {
		return regexp.MustCompile(`\A(?:` + pattern + `)\z`)
	})}
}

// Validate reports whether b matches the whole pattern.
func (r *Re) Validate(b []byte) bool {
	return r.compile().Match(b)
}

// ValidateString reports whether s matches the whole pattern.
func (r *Re) ValidateString(s string) bool {
	return r.compile().MatchString(s)
}

// Extract returns the submatches of b, or nil when b does not match.
// Group 0 is the whole match; further indices are documented on each
// table entry.
func (r *Re) Extract(b []byte) [][]byte {
	return r.compile().FindSubmatch(b)
}

// ExtractString is Extract over a string.
func (r *Re) ExtractString(s string) []string {
	return r.compile().FindStringSubmatch(s)
}

const (
	accessionPat = `[OPQ][0-9][A-Z0-9]{3}[0-9]|[A-NR-Z][0-9](?:[A-Z][A-Z0-9]{2}[0-9]){1,2}`
	mnemonicTail = `[a-zA-Z0-9]{1,5}`
)

// Identifier validators.
var (
	// Accession matches a UniProt accession (P46406, A2BC19, ...).
	Accession = anchored(accessionPat)

	// Mnemonic matches a UniProt entry name; the first half is a
	// short alphanumeric code or, for TrEMBL entries, an accession.
	Mnemonic = anchored(`(?:` + mnemonicTail + `|` + accessionPat + `)_` + mnemonicTail)

	// Gene matches the character set UniProt allows in gene names.
	Gene = anchored(`[a-zA-Z0-9\-_ /*.@:();'$+]+`)

	// AminoAcid matches a protein sequence. The letter O is not a
	// standard residue code and is rejected.
	AminoAcid = anchored(`(?i)[ABCDEFGHIJKLMNPQRSTUVWXYZ]+`)

	// Proteome matches a proteome identifier with an optional
	// component suffix. Component names in UniProt exports are free
	// text ("Chromosome 2", "Unplaced", "Genome assembly"), so
	// anything after ": " is accepted. Group 1 is the bare UP number.
	Proteome = anchored(`(UP[0-9]{9})(?:: .+)?`)

	// Taxonomy matches an NCBI taxonomy identifier.
	Taxonomy = anchored(`[0-9]+`)

	// Nucleotide matches a short-read base sequence.
	Nucleotide = anchored(`(?i)[ACGT]+`)

	// Phred matches a printable-ASCII quality string.
	Phred = anchored(`[!-~]+`)
)

// FASTA header extractors. Groups: 1 accession, 2 mnemonic, 3 name,
// 4 organism, 5 taxonomy (optional), 6 gene (optional), 7 evidence,
// 8 sequence version.
var (
	SwissProtHeader = anchored(
		`>sp\|(` + accessionPat + `)\|(` + mnemonicTail + `_` + mnemonicTail + `)` +
			fastaHeaderTail)

	TrEMBLHeader = anchored(
		`>tr\|(` + accessionPat + `)\|((?:` + mnemonicTail + `|` + accessionPat + `)_` + mnemonicTail + `)` +
			fastaHeaderTail)
)

const fastaHeaderTail = ` (.*?) OS=(.*?)` +
	`(?: OX=([0-9]+))?` +
	`(?: GN=([a-zA-Z0-9\-_ /*.@:();'$+]+?))?` +
	` PE=([1-5]) SV=([0-9]+)`

// MGF header-line extractors, one per dialect.
var (
	// MsConvertTitle: 1 file, 2 leading scan copy, 3 scan number.
	MsConvertTitle = anchored(
		`TITLE=(.*?)\.([0-9]+)\.[0-9]+\.[0-9]+ File:".*?", ` +
			`NativeID:"controllerType=[0-9]+ controllerNumber=[0-9]+ scan=([0-9]+)"`)

	// PwizTitle: 1 file, 2 scan number.
	PwizTitle = anchored(`TITLE=(.*?) Spectrum[0-9]+ scans: ([0-9]+)`)

	// PavaTitle: 1 scan number, 2 retention time, 3 file.
	PavaTitle = anchored(`TITLE=Scan ([0-9]+) \(rt=([0-9.+\-eE]+)\) \[(.*)\]`)

	// FullMsScan: 1 scan number.
	FullMsScan = anchored(`Scan#: ([0-9]+)`)

	// FullMsRt: 1 retention time.
	FullMsRt = anchored(`Ret\.Time: ([0-9.+\-eE]+)`)

	// Pepmass: 1 m/z, 2 intensity (optional; space or tab separated
	// depending on dialect, both accepted on read).
	Pepmass = anchored(`PEPMASS=([0-9.+\-eE]+)(?:[ \t]([0-9.+\-eE]+))?`)

	// Charge: 1 magnitude, 2 sign.
	Charge = anchored(`CHARGE=([0-9]+)([+\-])`)

	// Rtinseconds: 1 retention time.
	Rtinseconds = anchored(`RTINSECONDS=([0-9.+\-eE]+)`)

	// Scans: 1 scan number.
	Scans = anchored(`SCANS=([0-9]+)`)
)
