package filterbank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenterFrequenciesEndpoints(t *testing.T) {
	centers := CenterFrequencies(20, 20000, 100)

	require.Len(t, centers, 100)
	assert.Equal(t, 20.0, centers[0], "first center must equal min freq")
	assert.Equal(t, 20000.0, centers[99], "last center must equal max freq")
}

func TestCenterFrequenciesConstantRatio(t *testing.T) {
	const n = 50
	centers := CenterFrequencies(100, 10000, n)

	// Geometric spacing: successive values share one ratio
	expectedRatio := math.Pow(10000.0/100.0, 1.0/float64(n-1))
	for i := 1; i < n; i++ {
		ratio := centers[i] / centers[i-1]
		assert.InDelta(t, expectedRatio, ratio, 1e-9, "ratio at index %d", i)
	}
}

func TestCenterFrequenciesMonotonic(t *testing.T) {
	centers := CenterFrequencies(20, 20000, 100)
	for i := 1; i < len(centers); i++ {
		assert.Greater(t, centers[i], centers[i-1], "centers must ascend")
	}
}

func TestCenterFrequenciesSinglePoint(t *testing.T) {
	centers := CenterFrequencies(1000, 1000, 1)

	require.Len(t, centers, 1)
	assert.Equal(t, 1000.0, centers[0])
}

func TestCenterFrequenciesEqualEndpoints(t *testing.T) {
	// min == max with several bands: every center collapses to the same point
	centers := CenterFrequencies(500, 500, 5)

	require.Len(t, centers, 5)
	for i, c := range centers {
		assert.Equal(t, 500.0, c, "center %d", i)
	}
}

func TestCenterFrequenciesInvalidCount(t *testing.T) {
	assert.Nil(t, CenterFrequencies(20, 20000, 0))
	assert.Nil(t, CenterFrequencies(20, 20000, -1))
}

func TestPlanBandsFlatBandwidth(t *testing.T) {
	cfg := Config{NumBands: 100, MinFreq: 20, MaxFreq: 20000, NumTaps: 2048}
	bands := PlanBands(cfg)

	require.Len(t, bands, 100)

	// Bandwidth is flat across all bands regardless of center position
	expectedBW := (20000.0 - 20.0) / 100.0
	for _, b := range bands {
		assert.Equal(t, expectedBW, b.Bandwidth, "band %d", b.Index)
		assert.Equal(t, 2048, b.NumTaps, "band %d", b.Index)
	}

	// Indices ascend with frequency
	for i, b := range bands {
		assert.Equal(t, i, b.Index)
	}
}

func TestPlanBandsLowBandsOverlap(t *testing.T) {
	// The flat-bandwidth layout makes adjacent low bands overlap: the
	// spacing between the lowest geometric centers is far smaller than
	// the shared bandwidth.
	cfg := Config{NumBands: 100, MinFreq: 20, MaxFreq: 20000, NumTaps: 2048}
	bands := PlanBands(cfg)

	spacing := bands[1].CenterFreq - bands[0].CenterFreq
	assert.Less(t, spacing, bands[0].Bandwidth,
		"lowest bands should overlap under the flat-bandwidth layout")
}

func TestPlanBandsZeroBandwidth(t *testing.T) {
	cfg := Config{NumBands: 1, MinFreq: 1000, MaxFreq: 1000, NumTaps: 2048}
	bands := PlanBands(cfg)

	require.Len(t, bands, 1)
	assert.Equal(t, 1000.0, bands[0].CenterFreq)
	assert.Equal(t, 0.0, bands[0].Bandwidth)
}
