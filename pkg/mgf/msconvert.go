package mgf

import (
	"bytes"

	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/num"
	"github.com/tlunder/biotext/pkg/record"
	"github.com/tlunder/biotext/pkg/rx"
)

var (
	beginIons = []byte("BEGIN IONS")
	endIons   = []byte("END IONS")
)

// appendMsConvert serializes a spectrum the way msconvert does:
//
//	BEGIN IONS
//	TITLE=<file>.<num>.<num>.0 File:"<file>", NativeID:"controllerType=0 controllerNumber=1 scan=<num>"
//	RTINSECONDS=<rt>
//	PEPMASS=<mz>[ <intensity>]
//	CHARGE=<|z|><+|->        only when z != 1
//	<mz> <intensity>         one line per peak
//	END IONS
func appendMsConvert(dst []byte, s *record.Spectrum) []byte {
	dst = append(dst, beginIons...)
	dst = append(dst, "\nTITLE="...)
	dst = append(dst, s.File...)
	dst = append(dst, '.')
	dst = num.AppendUint(dst, uint64(s.Num))
	dst = append(dst, '.')
	dst = num.AppendUint(dst, uint64(s.Num))
	dst = append(dst, ".0 File:\""...)
	dst = append(dst, s.File...)
	dst = append(dst, "\", NativeID:\"controllerType=0 controllerNumber=1 scan="...)
	dst = num.AppendUint(dst, uint64(s.Num))
	dst = append(dst, '"')
	dst = append(dst, "\nRTINSECONDS="...)
	dst = num.AppendFloat(dst, s.Rt)
	dst = appendPepmass(dst, s, ' ')
	dst = appendCharge(dst, s.ParentZ)
	dst = appendPeaks(dst, s.Peaks, ' ')
	dst = append(dst, '\n')
	dst = append(dst, endIons...)
	return dst
}

// appendPepmass writes the PEPMASS line; the intensity tail is
// omitted when the intensity is zero. sep is the dialect's separator
// before the intensity.
func appendPepmass(dst []byte, s *record.Spectrum, sep byte) []byte {
	dst = append(dst, "\nPEPMASS="...)
	dst = num.AppendFloat(dst, s.ParentMz)
	if s.ParentIntensity != 0 {
		dst = append(dst, sep)
		dst = num.AppendFloat(dst, s.ParentIntensity)
	}
	return dst
}

// appendCharge writes the CHARGE line, omitted when z == 1.
func appendCharge(dst []byte, z int8) []byte {
	if z == 1 {
		return dst
	}
	dst = append(dst, "\nCHARGE="...)
	sign := byte('+')
	mag := int64(z)
	if mag < 0 {
		sign = '-'
		mag = -mag
	}
	dst = num.AppendInt(dst, mag)
	return append(dst, sign)
}

func appendPeaks(dst []byte, peaks []record.Peak, sep byte) []byte {
	for _, p := range peaks {
		dst = append(dst, '\n')
		dst = num.AppendFloat(dst, p.Mz)
		dst = append(dst, sep)
		dst = num.AppendFloat(dst, p.Intensity)
	}
	return dst
}

func parseMsConvert(chunk []byte) (*record.Spectrum, error) {
	ls := newLineScanner(chunk)
	s := &record.Spectrum{MsLevel: 2}

	if err := expectLine(ls, beginIons); err != nil {
		return nil, err
	}

	line, ok := ls.next()
	groups := rx.MsConvertTitle.Extract(line)
	if !ok || groups == nil {
		return nil, codec.Errorf(codec.KindInvalidInput, "malformed msconvert TITLE line %q", line)
	}
	s.File = string(groups[1])
	n, err := num.ParseUint(groups[3])
	if err != nil {
		return nil, err
	}
	s.Num = uint32(n)

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

func expectLine(ls *lineScanner, want []byte) error {
	line, ok := ls.next()
	if !ok || !bytes.Equal(line, want) {
		return codec.Errorf(codec.KindInvalidInput, "expected %q, found %q", want, line)
	}
	return nil
}

func parsePepmass(ls *lineScanner, s *record.Spectrum) error {
	line, ok := ls.next()
	groups := rx.Pepmass.Extract(line)
	if !ok || groups == nil {
		return codec.Errorf(codec.KindInvalidInput, "malformed PEPMASS line %q", line)
	}
	var err error
	if s.ParentMz, err = num.ParseFloat(groups[1]); err != nil {
		return err
	}
	if len(groups[2]) > 0 {
		if s.ParentIntensity, err = num.ParseFloat(groups[2]); err != nil {
			return err
		}
	}
	return nil
}

// parsePeakBlock consumes the optional CHARGE line and the peak list.
// With terminated set, the block must end with END IONS; otherwise
// it runs to the end of the chunk.
func parsePeakBlock(ls *lineScanner, s *record.Spectrum, sep byte, terminated bool) error {
	line, ok := ls.next()
	if ok {
		if groups := rx.Charge.Extract(line); groups != nil {
			mag, err := num.ParseInt(groups[1])
			if err != nil {
				return err
			}
			if groups[2][0] == '-' {
				mag = -mag
			}
			s.ParentZ = int8(mag)
			line, ok = ls.next()
		} else {
			s.ParentZ = 1
		}
	}

	for ok {
		if terminated && bytes.Equal(line, endIons) {
			return nil
		}
		p, err := parsePeak(line, sep)
		if err != nil {
			return err
		}
		s.Peaks = append(s.Peaks, p)
		line, ok = ls.next()
	}
	if terminated {
		return codec.Errorf(codec.KindUnexpectedEOF, "scan %d ended before END IONS", s.Num)
	}
	return nil
}

// parsePeak tokenizes one peak line on a single separator byte; any
// extra token is an error.
func parsePeak(line []byte, sep byte) (record.Peak, error) {
	i := bytes.IndexByte(line, sep)
	if i < 0 || bytes.IndexByte(line[i+1:], sep) >= 0 {
		return record.Peak{}, codec.Errorf(codec.KindInvalidInput, "malformed peak line %q", line)
	}
	mz, err := num.ParseFloat(line[:i])
	if err != nil {
		return record.Peak{}, err
	}
	intensity, err := num.ParseFloat(line[i+1:])
	if err != nil {
		return record.Peak{}, err
	}
	return record.Peak{Mz: mz, Intensity: intensity}, nil
}
