package record

import "math"

// terminalWater is the average mass of the water added at the peptide
// termini.
const terminalWater = 18.015

// avgResidueMass maps residue letters to average-isotope residue
// masses in Daltons. B, Z and J are the standard ambiguity codes;
// X and any letter outside the table contribute nothing.
var avgResidueMass = map[byte]float64{
	'A': 71.0788,
	'B': 114.5962,
	'C': 103.1388,
	'D': 115.0886,
	'E': 129.1155,
	'F': 147.1766,
	'G': 57.0519,
	'H': 137.1411,
	'I': 113.1594,
	'J': 113.1594,
	'K': 128.1741,
	'L': 113.1594,
	'M': 131.1926,
	'N': 114.1038,
	'P': 97.1167,
	'Q': 128.1307,
	'R': 156.1875,
	'S': 87.0782,
	'T': 101.1051,
	'U': 150.0388,
	'V': 99.1326,
	'W': 186.2132,
	'Y': 163.1760,
}

// SequenceMass returns the average-isotope mass of a protein sequence
// in integral Daltons, including terminal water. Unknown residues
// contribute 0; the empty sequence has no mass.
func SequenceMass(seq string) uint64 {
	if seq == "" {
		return 0
	}
	total := terminalWater
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		total += avgResidueMass[c]
	}
	return uint64(math.Round(total))
}
