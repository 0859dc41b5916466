package filter

import "math"

// Response evaluation constants.
const (
	defaultResponsePoints = 512

	minMagnitude = 1e-10 // Avoid log(0)
	dbMultiplier = 20.0  // 20·log10 for magnitude
)

// FrequencyResponse holds the sampled frequency response of a filter.
type FrequencyResponse struct {
	// Frequencies at which the response was evaluated, normalized to
	// Nyquist (0 to 1).
	Frequencies []float64

	// Magnitude response at each frequency (linear scale).
	Magnitude []float64

	// Phase response at each frequency (radians).
	Phase []float64
}

// ComputeFrequencyResponse evaluates the DTFT of a FIR filter at numPoints
// frequencies spread evenly from DC to Nyquist.
func ComputeFrequencyResponse(coeffs []float64, numPoints int) FrequencyResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FrequencyResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := float64(k) / float64(numPoints)
		response.Frequencies[k] = freq

		realPart, imagPart := dtftAt(coeffs, freq)
		response.Magnitude[k] = math.Hypot(realPart, imagPart)
		response.Phase[k] = math.Atan2(imagPart, realPart)
	}

	return response
}

// MagnitudeAt returns |H(f)| at a single frequency normalized to Nyquist.
func MagnitudeAt(coeffs []float64, freq float64) float64 {
	realPart, imagPart := dtftAt(coeffs, freq)
	return math.Hypot(realPart, imagPart)
}

// dtftAt computes H(e^jω) = Σ h[n]·e^(-jωn) with ω = πf.
func dtftAt(coeffs []float64, freq float64) (realPart, imagPart float64) {
	omega := math.Pi * freq
	for n, h := range coeffs {
		angle := omega * float64(n)
		realPart += h * math.Cos(angle)
		imagPart -= h * math.Sin(angle)
	}
	return realPart, imagPart
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
