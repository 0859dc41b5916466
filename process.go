package filterbank

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"github.com/tphakala/simd/f64"

	"github.com/tphakala/go-audio-filterbank/internal/engine"
	"github.com/tphakala/go-audio-filterbank/internal/filter"
)

// Process runs the filterbank over a mono signal.
//
// Each band's filter is designed, the signal is convolved through it, and
// the filtered bands are summed into one buffer which is then peak
// normalized. The input is not modified; the returned samples have the
// same length and sample rate as the input.
//
// A nil cfg uses the package defaults. Degenerate bands (empty passband
// after edge clipping) are skipped and listed in Result.SkippedBands. An
// all-zero accumulation is returned unscaled with Result.Silent set.
func Process(samples []float64, sampleRate float64, cfg *Config) (*Result, error) {
	c := cfg.withDefaults()

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %v Hz", ErrInvalidConfig, sampleRate)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	bands := PlanBands(c)
	output := make([]float64, len(samples))

	var skipped []int
	var err error
	if c.EnableParallel && len(bands) >= minBandsForParallel {
		skipped, err = runBandsParallel(samples, sampleRate, bands, &c, output)
	} else {
		skipped, err = runBandsSequential(samples, sampleRate, bands, &c, output)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		Samples:      output,
		SampleRate:   sampleRate,
		SkippedBands: skipped,
	}
	normalizePeak(res)

	return res, nil
}

// bandFilter designs one band's filter and convolves the full signal with
// it into dst. A degenerate band leaves dst untouched and returns
// filter.ErrDegenerateBand.
func bandFilter(dst, samples []float64, sampleRate float64, band BandSpec, window filter.Window) error {
	taps, err := filter.DesignBandPass(filter.BandPassParams{
		CenterFreq: band.CenterFreq,
		Bandwidth:  band.Bandwidth,
		SampleRate: sampleRate,
		NumTaps:    band.NumTaps,
		Window:     window,
	})
	if err != nil {
		return err
	}

	engine.FilterCausal(dst, samples, taps)
	return nil
}

// runBandsSequential is the reference band loop: ascending band order, one
// shared scratch buffer, in-place accumulation.
func runBandsSequential(samples []float64, sampleRate float64, bands []BandSpec, cfg *Config, output []float64) ([]int, error) {
	window := cfg.filterWindow()
	filtered := make([]float64, len(samples))

	var skipped []int
	for _, band := range bands {
		err := bandFilter(filtered, samples, sampleRate, band, window)
		degenerate := errors.Is(err, filter.ErrDegenerateBand)
		switch {
		case degenerate:
			skipped = append(skipped, band.Index)
		case err != nil:
			return nil, fmt.Errorf("band %d (%.1f Hz): %w", band.Index, band.CenterFreq, err)
		default:
			vecmath.AddBlockInPlace(output, filtered)
		}

		emitProgress(cfg, band, len(bands), degenerate)
	}

	return skipped, nil
}

// bandOutcome reports the completion of one band by a worker.
type bandOutcome struct {
	index   int
	skipped bool
	err     error
}

// runBandsParallel fans the band loop out across a worker pool. Each
// worker accumulates into a private partial-sum buffer; the partials are
// merged once after the pool drains, so no band ever writes a shared
// buffer. The merge order differs from the sequential loop, so parallel
// results agree with sequential ones only up to floating-point rounding.
func runBandsParallel(samples []float64, sampleRate float64, bands []BandSpec, cfg *Config, output []float64) ([]int, error) {
	window := cfg.filterWindow()

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(bands) {
		workers = len(bands)
	}

	jobs := make(chan BandSpec)
	outcomes := make(chan bandOutcome, len(bands))
	partials := make([][]float64, workers)

	var wg sync.WaitGroup
	for w := range workers {
		partial := make([]float64, len(samples))
		partials[w] = partial

		wg.Add(1)
		go func() {
			defer wg.Done()
			filtered := make([]float64, len(samples))
			for band := range jobs {
				err := bandFilter(filtered, samples, sampleRate, band, window)
				switch {
				case errors.Is(err, filter.ErrDegenerateBand):
					outcomes <- bandOutcome{index: band.Index, skipped: true}
				case err != nil:
					outcomes <- bandOutcome{
						index: band.Index,
						err:   fmt.Errorf("band %d (%.1f Hz): %w", band.Index, band.CenterFreq, err),
					}
				default:
					vecmath.AddBlockInPlace(partial, filtered)
					outcomes <- bandOutcome{index: band.Index}
				}
			}
		}()
	}

	go func() {
		for _, band := range bands {
			jobs <- band
		}
		close(jobs)
	}()

	// Completion order is nondeterministic, so outcomes are buffered and
	// released in ascending band order to keep progress reporting
	// deterministic.
	var skipped []int
	var firstErr error
	pending := make(map[int]bandOutcome, len(bands))
	next := 0

	for range bands {
		out := <-outcomes
		pending[out.index] = out

		for {
			o, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)

			if o.err != nil && firstErr == nil {
				firstErr = o.err
			}
			if o.skipped {
				skipped = append(skipped, o.index)
			}
			emitProgress(cfg, bands[o.index], len(bands), o.skipped)
			next++
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	// Normalization is a strict barrier: merge only after every band's
	// contribution has landed in its worker's partial sum.
	for _, partial := range partials {
		vecmath.AddBlockInPlace(output, partial)
	}

	return skipped, nil
}

// emitProgress delivers one band's progress event, if a callback is set.
func emitProgress(cfg *Config, band BandSpec, total int, skipped bool) {
	if cfg.Progress == nil {
		return
	}

	cfg.Progress(BandProgress{
		Index:      band.Index,
		Total:      total,
		CenterFreq: band.CenterFreq,
		Skipped:    skipped,
	})
}

// normalizePeak rescales the accumulated buffer to unit peak amplitude,
// or flags silence when there is nothing to scale.
func normalizePeak(res *Result) {
	peak := vecmath.MaxAbs(res.Samples)
	if peak == 0 {
		res.Silent = true
		return
	}

	res.Peak = peak
	f64.Scale(res.Samples, res.Samples, 1/peak)
}
