// Package filterbank provides a multi-band FIR filterbank for offline
// audio analysis and resynthesis in pure Go.
//
// The filterbank decomposes a mono waveform into N bandpass sub-bands with
// geometrically spaced center frequencies, filters the signal through each
// band, sums the filtered outputs, and peak-normalizes the result.
//
// # Features
//
//   - Windowed-sinc linear-phase bandpass design (Hamming window, with an
//     optional Kaiser window for higher stopband attenuation)
//   - FFT overlap-save convolution via gonum for long filters, with a
//     direct SIMD path for short ones
//   - Parallel band processing across a fixed-size worker pool with
//     per-worker partial sums and a single merge step
//   - Per-band progress events delivered through a callback, in ascending
//     band order regardless of execution order
//
// # Quick Start
//
// For one-shot processing with defaults (100 bands, 20 Hz to 20 kHz,
// 2048 taps):
//
//	result, err := filterbank.ProcessMono(samples, 44100)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	writeOutput(result.Samples)
//
// For full control:
//
//	cfg := &filterbank.Config{
//	    NumBands: 100,
//	    MinFreq:  20,
//	    MaxFreq:  20000,
//	    NumTaps:  2048,
//	    Progress: func(p filterbank.BandProgress) {
//	        log.Printf("band %d/%d: %.0f Hz", p.Index+1, p.Total, p.CenterFreq)
//	    },
//	}
//	result, err := filterbank.Process(samples, 44100, cfg)
//
// # Band Layout
//
// Center frequencies are geometrically spaced over [MinFreq, MaxFreq]
// inclusive. Every band shares one flat absolute bandwidth of
// (MaxFreq − MinFreq) / NumBands. With geometric centers this means heavy
// overlap among low-frequency bands and sparse coverage near the top of
// the range. The layout is part of the filterbank's defined frequency
// response; outputs are only comparable across implementations that keep
// it.
//
// # Silence
//
// Peak normalization of an all-zero accumulation is undefined, so the
// pipeline returns the zero buffer unchanged with [Result.Silent] set
// instead of dividing by zero.
//
// # Thread Safety
//
// [Process] is a pure function of its inputs; distinct calls may run
// concurrently. A single Config value must not be mutated while a call
// using it is in flight.
package filterbank
