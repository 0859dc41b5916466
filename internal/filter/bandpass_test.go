package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-filterbank/internal/testutil"
)

func TestDesignBandPassBasic(t *testing.T) {
	taps, err := DesignBandPass(BandPassParams{
		CenterFreq: 1000,
		Bandwidth:  200,
		SampleRate: 44100,
		NumTaps:    2048,
	})
	require.NoError(t, err)
	require.Len(t, taps, 2048)

	testutil.AssertNoNaNOrInf(t, taps)
	testutil.AssertSymmetric(t, taps, testutil.DefaultTolerance)
}

func TestDesignBandPassUnityGainAtCenter(t *testing.T) {
	const (
		sampleRate = 44100.0
		nyquist    = sampleRate / 2
	)

	// Centers chosen so no passband edge hits the clipping limits; for a
	// clipped band the unity point moves with the clipped edges.
	for _, centerFreq := range []float64{440, 1000, 5000, 15000} {
		taps, err := DesignBandPass(BandPassParams{
			CenterFreq: centerFreq,
			Bandwidth:  200,
			SampleRate: sampleRate,
			NumTaps:    2048,
		})
		require.NoError(t, err, "center %v Hz", centerFreq)

		gain := MagnitudeAt(taps, centerFreq/nyquist)
		assert.InDelta(t, 1.0, gain, 1e-9,
			"magnitude response at center %v Hz must be unity", centerFreq)
	}
}

func TestDesignBandPassStopbandAttenuation(t *testing.T) {
	const (
		sampleRate = 44100.0
		nyquist    = sampleRate / 2
	)

	taps, err := DesignBandPass(BandPassParams{
		CenterFreq: 4000,
		Bandwidth:  1000,
		SampleRate: sampleRate,
		NumTaps:    2048,
	})
	require.NoError(t, err)

	// Well outside the passband the response must be deep in the
	// stopband (Hamming gives ~53 dB; require a conservative 40 dB).
	for _, freq := range []float64{500, 1000, 8000, 16000} {
		db := MagnitudeDB(MagnitudeAt(taps, freq/nyquist))
		assert.Less(t, db, -40.0, "response at %v Hz should be stopband", freq)
	}
}

func TestDesignBandPassEdgeClipping(t *testing.T) {
	// Low edge below DC: clipped to 0.001 of Nyquist instead of failing
	lowBand, err := DesignBandPass(BandPassParams{
		CenterFreq: 20,
		Bandwidth:  200,
		SampleRate: 44100,
		NumTaps:    1024,
	})
	require.NoError(t, err)
	testutil.AssertNoNaNOrInf(t, lowBand)

	// High edge past Nyquist: clipped to 0.999 of Nyquist
	highBand, err := DesignBandPass(BandPassParams{
		CenterFreq: 22000,
		Bandwidth:  500,
		SampleRate: 44100,
		NumTaps:    1024,
	})
	require.NoError(t, err)
	testutil.AssertNoNaNOrInf(t, highBand)
}

func TestDesignBandPassDegenerate(t *testing.T) {
	// Zero bandwidth collapses the passband
	_, err := DesignBandPass(BandPassParams{
		CenterFreq: 1000,
		Bandwidth:  0,
		SampleRate: 44100,
		NumTaps:    1024,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerateBand)

	// Band entirely above Nyquist: low edge clips past the high edge
	_, err = DesignBandPass(BandPassParams{
		CenterFreq: 30000,
		Bandwidth:  100,
		SampleRate: 44100,
		NumTaps:    1024,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerateBand)
}

func TestDesignBandPassInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params BandPassParams
	}{
		{"zero sample rate", BandPassParams{CenterFreq: 1000, Bandwidth: 200, SampleRate: 0, NumTaps: 64}},
		{"negative sample rate", BandPassParams{CenterFreq: 1000, Bandwidth: 200, SampleRate: -44100, NumTaps: 64}},
		{"zero taps", BandPassParams{CenterFreq: 1000, Bandwidth: 200, SampleRate: 44100, NumTaps: 0}},
		{"negative taps", BandPassParams{CenterFreq: 1000, Bandwidth: 200, SampleRate: 44100, NumTaps: -1}},
		{"negative bandwidth", BandPassParams{CenterFreq: 1000, Bandwidth: -200, SampleRate: 44100, NumTaps: 64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DesignBandPass(tt.params)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestDesignBandPassKaiserWindow(t *testing.T) {
	taps, err := DesignBandPass(BandPassParams{
		CenterFreq: 1000,
		Bandwidth:  200,
		SampleRate: 44100,
		NumTaps:    2048,
		Window:     WindowKaiser,
	})
	require.NoError(t, err)
	require.Len(t, taps, 2048)

	testutil.AssertNoNaNOrInf(t, taps)
	testutil.AssertSymmetric(t, taps, testutil.DefaultTolerance)

	gain := MagnitudeAt(taps, 1000/22050.0)
	assert.InDelta(t, 1.0, gain, 1e-9)
}

func TestDesignBandPassDeterministic(t *testing.T) {
	params := BandPassParams{
		CenterFreq: 2500,
		Bandwidth:  400,
		SampleRate: 48000,
		NumTaps:    1024,
	}

	first, err := DesignBandPass(params)
	require.NoError(t, err)
	second, err := DesignBandPass(params)
	require.NoError(t, err)

	assert.Equal(t, first, second, "design must be deterministic")
}
