package filterbank

// Default configuration matching the reference batch processing setup:
// 100 bands spanning the audible range with 2048-tap filters.
const (
	// DefaultNumBands is the number of bandpass bands.
	DefaultNumBands = 100

	// DefaultMinFreq is the lowest band center frequency in Hz.
	DefaultMinFreq = 20.0

	// DefaultMaxFreq is the highest band center frequency in Hz.
	DefaultMaxFreq = 20000.0

	// DefaultNumTaps is the FIR filter length per band.
	DefaultNumTaps = 2048
)

const (
	// Bands below this count are not worth fanning out to workers.
	minBandsForParallel = 2
)
