package filterbank

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-audio-filterbank/internal/filter"
)

// Common errors returned by the filterbank.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid filterbank configuration")

	// ErrDegenerateBand indicates a band whose passband collapsed to
	// nothing after edge clipping. Process skips such bands; the sentinel
	// is exported for callers driving the designer directly.
	ErrDegenerateBand = filter.ErrDegenerateBand
)

// WindowFunc selects the tapering window applied to the windowed-sinc
// band filters.
type WindowFunc int

const (
	// WindowHamming is the default window. It reproduces the reference
	// filterbank's frequency response exactly.
	WindowHamming WindowFunc = iota

	// WindowKaiser trades a wider main lobe for deeper stopband
	// attenuation. Outputs are not comparable with Hamming-window runs.
	WindowKaiser
)

// BandProgress describes the completion of one band.
// Events are delivered in ascending band order.
type BandProgress struct {
	// Index is the zero-based band index.
	Index int

	// Total is the number of bands in the run.
	Total int

	// CenterFreq is the band's center frequency in Hz.
	CenterFreq float64

	// Skipped is true when the band was degenerate and contributed
	// nothing to the output.
	Skipped bool
}

// Config holds filterbank parameters.
// The zero value is usable: zero fields are replaced by the package
// defaults (100 bands, 20 Hz to 20 kHz, 2048 taps).
type Config struct {
	// NumBands is the number of bandpass bands.
	NumBands int

	// MinFreq is the lowest band center frequency in Hz.
	MinFreq float64

	// MaxFreq is the highest band center frequency in Hz.
	// MinFreq == MaxFreq is allowed and degenerates to a single center
	// point with zero bandwidth.
	MaxFreq float64

	// NumTaps is the FIR filter length shared by every band.
	// A constant tap count keeps the group delay identical across bands,
	// so the additive recombination stays phase-consistent.
	NumTaps int

	// Window selects the filter design window. Defaults to Hamming.
	Window WindowFunc

	// EnableParallel fans the band loop out across a worker pool.
	// Parallel and sequential runs agree up to floating-point summation
	// order.
	EnableParallel bool

	// Workers bounds the worker pool size when EnableParallel is set.
	// Zero means one worker per CPU.
	Workers int

	// Progress, when non-nil, receives one event per band in ascending
	// band order. The callback runs on the coordinating goroutine; it
	// must not block for long.
	Progress func(BandProgress)
}

// Result is the outcome of one filterbank run.
type Result struct {
	// Samples is the recombined signal, peak-normalized to 1.0 unless
	// Silent is set. Its length equals the input length.
	Samples []float64

	// SampleRate is the sample rate of Samples in Hz, unchanged from the
	// input.
	SampleRate float64

	// Peak is the maximum absolute sample of the accumulated signal
	// before normalization. Zero when Silent.
	Peak float64

	// Silent reports that the accumulated signal was entirely zero, in
	// which case Samples is returned unscaled rather than divided by a
	// zero peak.
	Silent bool

	// SkippedBands lists the indices of degenerate bands that contributed
	// nothing to the output.
	SkippedBands []int
}

// withDefaults returns a copy of the config with zero fields replaced by
// package defaults. A nil receiver yields the full default configuration.
func (c *Config) withDefaults() Config {
	var cfg Config
	if c != nil {
		cfg = *c
	}

	if cfg.NumBands == 0 {
		cfg.NumBands = DefaultNumBands
	}
	if cfg.MinFreq == 0 {
		cfg.MinFreq = DefaultMinFreq
	}
	if cfg.MaxFreq == 0 {
		cfg.MaxFreq = DefaultMaxFreq
	}
	if cfg.NumTaps == 0 {
		cfg.NumTaps = DefaultNumTaps
	}

	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.NumBands < 1 {
		return fmt.Errorf("%w: num bands must be at least 1, got %d", ErrInvalidConfig, c.NumBands)
	}

	if c.NumTaps < 1 {
		return fmt.Errorf("%w: tap count must be at least 1, got %d", ErrInvalidConfig, c.NumTaps)
	}

	if c.MinFreq <= 0 {
		return fmt.Errorf("%w: min frequency must be positive, got %v Hz", ErrInvalidConfig, c.MinFreq)
	}

	if c.MaxFreq < c.MinFreq {
		return fmt.Errorf("%w: max frequency %v Hz below min frequency %v Hz", ErrInvalidConfig, c.MaxFreq, c.MinFreq)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}

	switch c.Window {
	case WindowHamming, WindowKaiser:
	default:
		return fmt.Errorf("%w: unknown window function %d", ErrInvalidConfig, c.Window)
	}

	return nil
}

// filterWindow maps the public window selector to the designer's.
func (c *Config) filterWindow() filter.Window {
	if c.Window == WindowKaiser {
		return filter.WindowKaiser
	}
	return filter.WindowHamming
}
