package record

import "gonum.org/v1/gonum/floats"

// Peak is one (m/z, intensity) pair within a scan. Z is the fragment
// charge where a format carries one. Peaks keep acquisition order;
// codecs never reorder them.
type Peak struct {
	Mz        float64
	Intensity float64
	Z         int8
}

// Spectrum is one mass-spectrometry scan.
type Spectrum struct {
	Num             uint32 // scan number
	MsLevel         uint8
	Rt              float64 // retention time, seconds
	ParentRt        float64
	ParentMz        float64
	ParentIntensity float64
	ParentZ         int8
	File            string
	Filter          string
	Peaks           []Peak
	Parent          []uint32 // scan numbers of precursor scans
	Children        []uint32 // scan numbers of product scans
}

// IsValid reports whether the scan can be serialized: a real scan
// number, non-negative measurements, a usable precursor charge, and
// at least one peak.
func (s *Spectrum) IsValid() bool {
	if s.Num == 0 || s.ParentZ == 0 {
		return false
	}
	if s.Rt < 0 || s.ParentRt < 0 || s.ParentMz < 0 || s.ParentIntensity < 0 {
		return false
	}
	return len(s.Peaks) > 0
}

// IsComplete is IsValid plus an MS level and an instrument filter.
func (s *Spectrum) IsComplete() bool {
	return s.IsValid() && s.MsLevel != 0 && s.Filter != ""
}

// BasePeak returns the peak with the largest intensity, or a zero
// Peak when the scan has none.
func (s *Spectrum) BasePeak() Peak {
	if len(s.Peaks) == 0 {
		return Peak{}
	}
	intens := make([]float64, len(s.Peaks))
	for i, p := range s.Peaks {
		intens[i] = p.Intensity
	}
	return s.Peaks[floats.MaxIdx(intens)]
}

// TotalIonCurrent returns the summed intensity over all peaks.
func (s *Spectrum) TotalIonCurrent() float64 {
	if len(s.Peaks) == 0 {
		return 0
	}
	intens := make([]float64, len(s.Peaks))
	for i, p := range s.Peaks {
		intens[i] = p.Intensity
	}
	return floats.Sum(intens)
}
