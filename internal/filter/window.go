// Package filter provides FIR filter design for the filterbank.
package filter

import (
	"math"

	"github.com/tphakala/go-audio-filterbank/internal/mathutil"
)

// Window selects the tapering window used in windowed-sinc design.
type Window int

const (
	// WindowHamming is the reference window for the filterbank bands.
	WindowHamming Window = iota

	// WindowKaiser provides deeper stopband attenuation at the cost of a
	// wider main lobe.
	WindowKaiser
)

const (
	// Hamming window coefficients: w[n] = 0.54 - 0.46·cos(2πn/(N-1))
	hammingAlpha = 0.54
	hammingBeta  = 0.46

	// Stopband attenuation target when the Kaiser window is selected.
	kaiserStopbandAttenuation = 80.0

	// Center tap value for degenerate single-sample windows.
	unityTap = 1.0
)

// HammingWindow generates a symmetric Hamming window of the specified
// length. The window is symmetric: w[i] = w[length-1-i].
func HammingWindow(length int) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)

	if length == 1 {
		window[0] = unityTap
		return window
	}

	span := float64(length - 1)
	for n := range length {
		window[n] = hammingAlpha - hammingBeta*math.Cos(2*math.Pi*float64(n)/span)
	}

	return window
}

// KaiserWindow generates a Kaiser window of the specified length and β
// parameter.
//
// The Kaiser window provides excellent control over the trade-off between
// main lobe width and sidelobe level: higher β means more attenuation but
// a wider main lobe. The window is symmetric: w[i] = w[length-1-i].
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)

	if length == 1 {
		window[0] = unityTap
		return window
	}

	// w[n] = I₀(β·sqrt(1 - ((n-α)/α)²)) / I₀(β), α = (N-1)/2
	alpha := float64(length-1) / 2
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(1.0-x*x)) / i0Beta
	}

	return window
}

// makeWindow builds the window selected by w.
func makeWindow(w Window, length int) []float64 {
	if w == WindowKaiser {
		return KaiserWindow(length, mathutil.KaiserBeta(kaiserStopbandAttenuation))
	}
	return HammingWindow(length)
}
