package filterbank

import "math"

// BandSpec describes one bandpass band of the filterbank.
type BandSpec struct {
	// Index is the zero-based position in ascending frequency order.
	Index int

	// CenterFreq is the band's center frequency in Hz.
	CenterFreq float64

	// Bandwidth is the band's passband width in Hz. Every band of a run
	// shares the same flat bandwidth regardless of center frequency.
	Bandwidth float64

	// NumTaps is the FIR filter length for this band.
	NumTaps int
}

// CenterFrequencies returns n center frequencies geometrically spaced over
// [minFreq, maxFreq] inclusive: successive values are related by a constant
// ratio, the first equals minFreq and the last equals maxFreq.
//
// n == 1 yields the single value minFreq.
func CenterFrequencies(minFreq, maxFreq float64, n int) []float64 {
	if n < 1 {
		return nil
	}

	centers := make([]float64, n)
	if n == 1 {
		centers[0] = minFreq
		return centers
	}

	// centers[i] = minFreq * (maxFreq/minFreq)^(i/(n-1))
	ratio := maxFreq / minFreq
	span := float64(n - 1)
	for i := range centers {
		centers[i] = minFreq * math.Pow(ratio, float64(i)/span)
	}

	// Pin the endpoints to the exact configured values.
	centers[0] = minFreq
	centers[n-1] = maxFreq

	return centers
}

// PlanBands derives the band list for a configuration.
//
// The bandwidth is flat across all bands: (MaxFreq − MinFreq) / NumBands.
// Combined with geometric center spacing this means low-frequency bands
// overlap heavily while high-frequency bands may leave gaps. That uneven
// coverage is part of the filterbank's defined response and is kept as is.
func PlanBands(cfg Config) []BandSpec {
	centers := CenterFrequencies(cfg.MinFreq, cfg.MaxFreq, cfg.NumBands)
	bandwidth := (cfg.MaxFreq - cfg.MinFreq) / float64(cfg.NumBands)

	bands := make([]BandSpec, len(centers))
	for i, cf := range centers {
		bands[i] = BandSpec{
			Index:      i,
			CenterFreq: cf,
			Bandwidth:  bandwidth,
			NumTaps:    cfg.NumTaps,
		}
	}

	return bands
}
