package mgf

import (
	"bytes"

	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/num"
	"github.com/tlunder/biotext/pkg/record"
	"github.com/tlunder/biotext/pkg/rx"
)

// appendFullMs serializes a survey scan in the flat PAVA variant:
// no BEGIN/END framing, three bookkeeping lines after the retention
// time, tab-separated peaks, and a final newline so the record ends
// in a blank line once the separator follows.
func appendFullMs(dst []byte, s *record.Spectrum) []byte {
	base := s.BasePeak()
	dst = append(dst, "Scan#: "...)
	dst = num.AppendUint(dst, uint64(s.Num))
	dst = append(dst, "\nRet.Time: "...)
	dst = num.AppendFloat(dst, s.Rt)
	dst = append(dst, "\nIonInjectionTime(ms): 0.0"...)
	dst = append(dst, "\nTotalIonCurrent: 0"...)
	dst = append(dst, "\nBasePeak: "...)
	dst = num.AppendFloat(dst, base.Mz)
	dst = append(dst, '\t')
	dst = num.AppendFloat(dst, base.Intensity)
	dst = appendPeaks(dst, s.Peaks, '\t')
	return append(dst, '\n')
}

// Bookkeeping prefixes the parser accepts and discards.
var fullMsBookkeeping = [][]byte{
	[]byte("IonInjectionTime(ms):"),
	[]byte("TotalIonCurrent:"),
	[]byte("BasePeak:"),
}

func parseFullMs(chunk []byte) (*record.Spectrum, error) {
	ls := newLineScanner(chunk)
	// Survey scans carry no precursor; ParentZ is pinned to 1 so a
	// parsed record can still pass validation.
	s := &record.Spectrum{MsLevel: 1, ParentZ: 1}

	line, ok := ls.next()
	groups := rx.FullMsScan.Extract(line)
	if !ok || groups == nil {
		return nil, codec.Errorf(codec.KindInvalidInput, "malformed Scan# line %q", line)
	}
	n, err := num.ParseUint(groups[1])
	if err != nil {
		return nil, err
	}
	s.Num = uint32(n)

	line, ok = ls.next()
	groups = rx.FullMsRt.Extract(line)
	if !ok || groups == nil {
		return nil, codec.Errorf(codec.KindInvalidInput, "malformed Ret.Time line %q", line)
	}
	if s.Rt, err = num.ParseFloat(groups[1]); err != nil {
		return nil, err
	}

	for {
		line, ok = ls.next()
		if !ok {
			return s, nil
		}
		if len(line) == 0 {
			continue
		}
		if isBookkeeping(line) {
			continue
		}
		p, err := parsePeak(line, '\t')
		if err != nil {
			return nil, err
		}
		s.Peaks = append(s.Peaks, p)
	}
}

func isBookkeeping(line []byte) bool {
	for _, p := range fullMsBookkeeping {
		if bytes.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
