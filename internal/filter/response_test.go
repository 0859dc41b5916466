package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFrequencyResponseIdentityFilter(t *testing.T) {
	// A unit impulse passes everything: |H(f)| = 1 at every frequency
	coeffs := []float64{1.0}
	response := ComputeFrequencyResponse(coeffs, 64)

	require.Len(t, response.Frequencies, 64)
	require.Len(t, response.Magnitude, 64)
	require.Len(t, response.Phase, 64)

	for k, mag := range response.Magnitude {
		assert.InDelta(t, 1.0, mag, 1e-12, "frequency %v", response.Frequencies[k])
	}
}

func TestComputeFrequencyResponseDefaultPoints(t *testing.T) {
	response := ComputeFrequencyResponse([]float64{1.0}, 0)
	assert.Len(t, response.Magnitude, defaultResponsePoints)
}

func TestMagnitudeAtMovingAverage(t *testing.T) {
	// Two-tap averager: |H(f)| = |cos(πf/2)|
	coeffs := []float64{0.5, 0.5}

	assert.InDelta(t, 1.0, MagnitudeAt(coeffs, 0), 1e-12, "DC gain")
	assert.InDelta(t, 0.0, MagnitudeAt(coeffs, 1), 1e-12, "Nyquist null")
	assert.InDelta(t, math.Cos(math.Pi/4), MagnitudeAt(coeffs, 0.5), 1e-12)
}

func TestMagnitudeDB(t *testing.T) {
	assert.InDelta(t, 0.0, MagnitudeDB(1.0), 1e-12)
	assert.InDelta(t, -20.0, MagnitudeDB(0.1), 1e-12)
	assert.InDelta(t, 6.0206, MagnitudeDB(2.0), 1e-3)

	// Zero magnitude is floored instead of producing -Inf
	assert.False(t, math.IsInf(MagnitudeDB(0), -1))
}
