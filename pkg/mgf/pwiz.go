package mgf

import (
	"math"

	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/num"
	"github.com/tlunder/biotext/pkg/record"
	"github.com/tlunder/biotext/pkg/rx"
)

// appendPwiz serializes a spectrum the way the ProteoWizard library
// does. Same framing as msconvert, but the title carries a Spectrum0
// tag, the scan number gets its own SCANS line, and RTINSECONDS is
// rounded to whole seconds.
func appendPwiz(dst []byte, s *record.Spectrum) []byte {
	dst = append(dst, beginIons...)
	dst = append(dst, "\nTITLE="...)
	dst = append(dst, s.File...)
	dst = append(dst, " Spectrum0 scans: "...)
	dst = num.AppendUint(dst, uint64(s.Num))
	dst = append(dst, "\nSCANS="...)
	dst = num.AppendUint(dst, uint64(s.Num))
	dst = append(dst, "\nRTINSECONDS="...)
	dst = num.AppendUint(dst, uint64(uint32(math.Round(s.Rt))))
	dst = appendPepmass(dst, s, ' ')
	dst = appendCharge(dst, s.ParentZ)
	dst = appendPeaks(dst, s.Peaks, ' ')
	dst = append(dst, '\n')
	dst = append(dst, endIons...)
	return dst
}

func parsePwiz(chunk []byte) (*record.Spectrum, error) {
	ls := newLineScanner(chunk)
	s := &record.Spectrum{MsLevel: 2}

	if err := expectLine(ls, beginIons); err != nil {
		return nil, err
	}

	line, ok := ls.next()
	groups := rx.PwizTitle.Extract(line)
	if !ok || groups == nil {
		return nil, codec.Errorf(codec.KindInvalidInput, "malformed pwiz TITLE line %q", line)
	}
	s.File = string(groups[1])
	n, err := num.ParseUint(groups[2])
	if err != nil {
		return nil, err
	}
	s.Num = uint32(n)

	line, ok = ls.next()
	groups = rx.Scans.Extract(line)
	if !ok || groups == nil {
		return nil, codec.Errorf(codec.KindInvalidInput, "malformed SCANS line %q", line)
	}
	if n, err = num.ParseUint(groups[1]); err != nil {
		return nil, err
	}
	if uint32(n) != s.Num {
		return nil, codec.Errorf(codec.KindInvalidInput, "SCANS=%d disagrees with title scan %d", n, s.Num)
	}

	line, ok = ls.next()
	groups = rx.Rtinseconds.Extract(line)
	if !ok || groups == nil {
		return nil, codec.Errorf(codec.KindInvalidInput, "malformed RTINSECONDS line %q", line)
	}
	if s.Rt, err = num.ParseFloat(groups[1]); err != nil {
		return nil, err
	}

	if err := parsePepmass(ls, s); err != nil {
		return nil, err
	}

	return s, parsePeakBlock(ls, s, ' ', true)
}
