package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
)

const (
	// Band edges are clipped into this normalized range (fractions of
	// Nyquist) so that requests reaching the spectrum extremes produce a
	// valid filter specification instead of unstable coefficients. The
	// cost is a silently narrowed passband near DC and Nyquist.
	minBandEdge = 0.001
	maxBandEdge = 0.999

	// Thresholds for near-zero arguments in sinc evaluation and gain
	// normalization.
	sincZeroThreshold = 1e-10
	gainZeroThreshold = 1e-10
)

// Errors returned by the filter designer.
var (
	// ErrInvalidParams indicates invalid design parameters.
	ErrInvalidParams = errors.New("invalid filter parameters")

	// ErrDegenerateBand indicates that the clipped passband is empty
	// (low edge at or above the high edge).
	ErrDegenerateBand = errors.New("degenerate band: empty passband after clipping")
)

// BandPassParams holds parameters for bandpass filter design.
type BandPassParams struct {
	// CenterFreq is the passband center frequency in Hz.
	CenterFreq float64

	// Bandwidth is the passband width in Hz.
	Bandwidth float64

	// SampleRate is the signal sample rate in Hz. Must be positive.
	SampleRate float64

	// NumTaps is the filter length (number of coefficients).
	NumTaps int

	// Window is the tapering window. The zero value is Hamming.
	Window Window
}

// Validate checks if the design parameters are valid.
func (p *BandPassParams) Validate() error {
	if p.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %v Hz", ErrInvalidParams, p.SampleRate)
	}

	if p.NumTaps < 1 {
		return fmt.Errorf("%w: tap count must be at least 1, got %d", ErrInvalidParams, p.NumTaps)
	}

	if p.Bandwidth < 0 {
		return fmt.Errorf("%w: bandwidth must not be negative, got %v Hz", ErrInvalidParams, p.Bandwidth)
	}

	return nil
}

// DesignBandPass designs a linear-phase bandpass FIR filter by the
// windowed-sinc method.
//
// The passband edges (CenterFreq ± Bandwidth/2) are normalized to
// fractions of Nyquist and clipped into [0.001, 0.999]. The ideal bandpass
// impulse response is formed as the difference of two ideal lowpass sinc
// responses at the high and low edges, centered over NumTaps samples,
// tapered by the selected window, and scaled so the magnitude response at
// the passband center is unity.
//
// The result is symmetric (linear phase), so every band of a constant
// tap-count filterbank carries the same group delay of (NumTaps-1)/2
// samples.
//
// Returns ErrDegenerateBand when the clipped passband is empty, which
// happens for zero-bandwidth requests or bands pushed entirely past a
// clipping limit.
func DesignBandPass(p BandPassParams) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	nyquist := p.SampleRate / 2
	low := (p.CenterFreq - p.Bandwidth/2) / nyquist
	high := (p.CenterFreq + p.Bandwidth/2) / nyquist

	if low < minBandEdge {
		low = minBandEdge
	}
	if high > maxBandEdge {
		high = maxBandEdge
	}

	if low >= high {
		return nil, fmt.Errorf("%w: edges [%.6f, %.6f] of Nyquist", ErrDegenerateBand, low, high)
	}

	window := makeWindow(p.Window, p.NumTaps)
	taps := make([]float64, p.NumTaps)
	center := float64(p.NumTaps-1) / 2

	// Ideal bandpass = lowpass at the high edge minus lowpass at the low
	// edge, shifted to be causal and centered over the tap span.
	for n := range taps {
		x := float64(n) - center
		taps[n] = (sincLowPass(high, x) - sincLowPass(low, x)) * window[n]
	}

	// Scale for unity magnitude response at the passband center. For a
	// symmetric filter the response at normalized frequency f reduces to
	// Σ h[n]·cos(πf·(n-center)).
	fc := (low + high) / 2
	var gain float64
	for n, h := range taps {
		gain += h * math.Cos(math.Pi*fc*(float64(n)-center))
	}

	if math.Abs(gain) > gainZeroThreshold {
		f64.Scale(taps, taps, 1/gain)
	}

	return taps, nil
}

// sincLowPass evaluates the ideal lowpass impulse response with cutoff f
// (normalized to Nyquist) at offset x from the filter center:
// sin(πfx)/(πx), with limit f at x=0.
func sincLowPass(f, x float64) float64 {
	if math.Abs(x) < sincZeroThreshold {
		return f
	}
	return math.Sin(math.Pi*f*x) / (math.Pi * x)
}
