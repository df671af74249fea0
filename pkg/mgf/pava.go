package mgf

import (
	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/num"
	"github.com/tlunder/biotext/pkg/record"
	"github.com/tlunder/biotext/pkg/rx"
)

// appendPava serializes a spectrum in the PAVA MS2 shape: retention
// time lives in the title and the optional PEPMASS intensity is
// tab-separated. The line-order contract beyond the header was never
// published; this writer and parsePava are inverses of each other.
func appendPava(dst []byte, s *record.Spectrum) []byte {
	dst = append(dst, beginIons...)
	dst = append(dst, "\nTITLE=Scan "...)
	dst = num.AppendUint(dst, uint64(s.Num))
	dst = append(dst, " (rt="...)
	dst = num.AppendFloat(dst, s.Rt)
	dst = append(dst, ") ["...)
	dst = append(dst, s.File...)
	dst = append(dst, ']')
	dst = appendPepmass(dst, s, '\t')
	dst = appendCharge(dst, s.ParentZ)
	dst = appendPeaks(dst, s.Peaks, ' ')
	dst = append(dst, '\n')
	dst = append(dst, endIons...)
	return dst
}

func parsePava(chunk []byte) (*record.Spectrum, error) {
	ls := newLineScanner(chunk)
	s := &record.Spectrum{MsLevel: 2}

	if err := expectLine(ls, beginIons); err != nil {
		return nil, err
	}

	line, ok := ls.next()
	groups := rx.PavaTitle.Extract(line)
	if !ok || groups == nil {
		return nil, codec.Errorf(codec.KindInvalidInput, "malformed pava TITLE line %q", line)
	}
	n, err := num.ParseUint(groups[1])
	if err != nil {
		return nil, err
	}
	s.Num = uint32(n)
	if s.Rt, err = num.ParseFloat(groups[2]); err != nil {
		return nil, err
	}
	s.File = string(groups[3])

	if err := parsePepmass(ls, s); err != nil {
		return nil, err
	}

	return s, parsePeakBlock(ls, s, ' ', true)
}
