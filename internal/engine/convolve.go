// Package engine implements whole-signal FIR convolution for the
// filterbank.
package engine

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// Minimum kernel length to use FFT convolution; below this, direct
	// SIMD convolution is faster. Benchmarking with the gonum FFT puts
	// the crossover around 400-500 taps, so the filterbank default of
	// 2048 taps always takes the FFT path.
	minKernelForFFT = 400

	// Base FFT block size (power of 2 for efficiency).
	baseFFTBlockSize = 512

	// fftHermitianDivisor is used to calculate unique frequency bins in a
	// real FFT: a real FFT of size N has N/2 + 1 unique coefficients.
	fftHermitianDivisor = 2
)

// FilterCausal applies a causal FIR filter over the whole signal with zero
// initial filter state:
//
//	dst[n] = Σ taps[k]·signal[n−k], with signal[i] = 0 for i < 0
//
// dst must be at least as long as signal; exactly len(signal) output
// samples are written. Starting from zero state keeps the output the same
// length as the input; a linear-phase filter then delays the signal by
// (len(taps)−1)/2 samples.
//
// Kernels shorter than the FFT crossover use direct SIMD convolution;
// longer kernels use overlap-save FFT convolution. Both paths produce the
// same samples up to floating-point rounding.
func FilterCausal(dst, signal, taps []float64) {
	if len(signal) == 0 || len(taps) == 0 || len(dst) < len(signal) {
		return
	}

	// The causal filter equals a valid cross-correlation of the reversed
	// taps against the signal prefixed with len(taps)-1 zeros: the zeros
	// supply the empty initial state, and the padded length makes the
	// valid region exactly len(signal) samples.
	overlap := len(taps) - 1
	padded := make([]float64, len(signal)+overlap)
	copy(padded[overlap:], signal)

	reversed := make([]float64, len(taps))
	for i, h := range taps {
		reversed[len(taps)-1-i] = h
	}

	out := dst[:len(signal)]
	if len(taps) < minKernelForFFT {
		f64.ConvolveValid(out, padded, reversed)
		return
	}

	newFFTConvolver(reversed).convolve(out, padded)
}

// fftConvolver performs overlap-save FFT convolution for long kernels.
// This is O(N log N) versus O(N·M) for direct convolution.
//
// Overlap-save method:
//  1. Process the padded signal in blocks of fftSize samples with a
//     kernelLen-1 sample overlap between blocks.
//  2. Each block yields blockSize = fftSize - kernelLen + 1 valid output
//     samples.
//  3. The first kernelLen-1 samples of each block are circular-wrap
//     artifacts and are discarded.
type fftConvolver struct {
	fft       *fourier.FFT
	fftSize   int
	blockSize int // Valid output samples per block

	kernelFFT []complex128 // Kernel transformed once, reused per block
	kernelLen int
	scale     float64 // 1/fftSize; gonum's inverse transform is unnormalized

	signalBlock []float64
	signalFFT   []complex128
	productFFT  []complex128
	ifftResult  []float64
}

// newFFTConvolver creates an overlap-save convolver for the given kernel.
// The kernel is expected in cross-correlation order (already reversed by
// the caller); it is transformed once and reused for every block.
func newFFTConvolver(kernel []float64) *fftConvolver {
	kernelLen := len(kernel)

	// Next power of 2 >= 2*kernelLen for a reasonable block/overlap ratio.
	fftSize := baseFFTBlockSize
	for fftSize < 2*kernelLen {
		fftSize *= 2
	}

	fft := fourier.NewFFT(fftSize)

	// The FFT computes circular convolution y[n] = Σ x[(n−k) mod N]·h[k];
	// flipping h back turns that into the cross-correlation the direct
	// path computes.
	kernelPadded := make([]float64, fftSize)
	for i := range kernelLen {
		kernelPadded[i] = kernel[kernelLen-1-i]
	}

	fftLen := fftSize/fftHermitianDivisor + 1

	return &fftConvolver{
		fft:         fft,
		fftSize:     fftSize,
		blockSize:   fftSize - kernelLen + 1,
		kernelFFT:   fft.Coefficients(nil, kernelPadded),
		kernelLen:   kernelLen,
		scale:       1.0 / float64(fftSize),
		signalBlock: make([]float64, fftSize),
		signalFFT:   make([]complex128, fftLen),
		productFFT:  make([]complex128, fftLen),
		ifftResult:  make([]float64, fftSize),
	}
}

// convolve writes the valid cross-correlation of the prepared kernel
// against signal into dst. dst must hold len(signal) - kernelLen + 1
// samples.
func (c *fftConvolver) convolve(dst, signal []float64) {
	signalLen := len(signal)
	outputLen := signalLen - c.kernelLen + 1
	if outputLen <= 0 || len(dst) < outputLen {
		return
	}

	overlap := c.kernelLen - 1
	outIdx := 0

	for outIdx < outputLen {
		// Load the next block, zero-padded past the end of the signal.
		for i := range c.signalBlock {
			c.signalBlock[i] = 0
		}
		copyLen := min(c.fftSize, signalLen-outIdx)
		if copyLen > 0 {
			copy(c.signalBlock, signal[outIdx:outIdx+copyLen])
		}

		c.signalFFT = c.fft.Coefficients(c.signalFFT, c.signalBlock)

		// Pointwise product in the frequency domain.
		c128.Mul(c.productFFT, c.signalFFT, c.kernelFFT)

		c.ifftResult = c.fft.Sequence(c.ifftResult, c.productFFT)
		f64.Scale(c.ifftResult, c.ifftResult, c.scale)

		// Valid samples start past the circular-wrap region.
		validSamples := min(c.blockSize, outputLen-outIdx)
		copy(dst[outIdx:outIdx+validSamples], c.ifftResult[overlap:overlap+validSamples])

		outIdx += validSamples
	}
}
