package filterbank

import (
	"fmt"

	"github.com/tphakala/go-audio-filterbank/internal/engine"
	"github.com/tphakala/go-audio-filterbank/internal/filter"
)

// ProcessMono runs the filterbank over a mono signal with the default
// configuration: 100 bands, 20 Hz to 20 kHz, 2048 taps, sequential.
func ProcessMono(samples []float64, sampleRate float64) (*Result, error) {
	return Process(samples, sampleRate, nil)
}

// ProcessMonoParallel is like ProcessMono but spreads the band loop across
// one worker per CPU.
func ProcessMonoParallel(samples []float64, sampleRate float64) (*Result, error) {
	return Process(samples, sampleRate, &Config{EnableParallel: true})
}

// ProcessMonoFloat32 is like ProcessMono for float32 samples.
// Processing happens in float64; the result is converted back.
func ProcessMonoFloat32(samples []float32, sampleRate float64) ([]float32, error) {
	input := make([]float64, len(samples))
	for i, v := range samples {
		input[i] = float64(v)
	}

	res, err := Process(input, sampleRate, nil)
	if err != nil {
		return nil, err
	}

	output := make([]float32, len(res.Samples))
	for i, v := range res.Samples {
		output[i] = float32(v)
	}
	return output, nil
}

// FilterBand filters the signal through a single band and returns the
// filtered signal, without accumulation or normalization. Useful for
// inspecting one band's contribution in isolation.
func FilterBand(samples []float64, sampleRate float64, band BandSpec, window WindowFunc) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %v Hz", ErrInvalidConfig, sampleRate)
	}

	w := filter.WindowHamming
	if window == WindowKaiser {
		w = filter.WindowKaiser
	}

	taps, err := filter.DesignBandPass(filter.BandPassParams{
		CenterFreq: band.CenterFreq,
		Bandwidth:  band.Bandwidth,
		SampleRate: sampleRate,
		NumTaps:    band.NumTaps,
		Window:     w,
	})
	if err != nil {
		return nil, fmt.Errorf("band %d (%.1f Hz): %w", band.Index, band.CenterFreq, err)
	}

	filtered := make([]float64, len(samples))
	engine.FilterCausal(filtered, samples, taps)
	return filtered, nil
}
