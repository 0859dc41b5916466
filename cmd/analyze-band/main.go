// Command analyze-band prints the band plan of a filterbank configuration
// and the frequency response of individual band filters.
//
// Usage:
//
//	analyze-band -rate 44100                  # Band plan summary
//	analyze-band -rate 44100 -band 42         # Response of band 42
package main

import (
	"flag"
	"fmt"
	"log"

	filterbank "github.com/tphakala/go-audio-filterbank"
	"github.com/tphakala/go-audio-filterbank/internal/filter"
)

const (
	defaultSampleRate = 44100.0

	// Response display resolution
	responsePoints = 64

	noBandSelected = -1
)

func main() {
	numBands := flag.Int("bands", filterbank.DefaultNumBands, "Number of bandpass bands")
	minFreq := flag.Float64("min", filterbank.DefaultMinFreq, "Lowest band center frequency in Hz")
	maxFreq := flag.Float64("max", filterbank.DefaultMaxFreq, "Highest band center frequency in Hz")
	numTaps := flag.Int("taps", filterbank.DefaultNumTaps, "FIR filter length per band")
	sampleRate := flag.Float64("rate", defaultSampleRate, "Sample rate in Hz")
	bandIndex := flag.Int("band", noBandSelected, "Band index to analyze in detail (-1 for plan summary)")
	flag.Parse()

	cfg := filterbank.Config{
		NumBands: *numBands,
		MinFreq:  *minFreq,
		MaxFreq:  *maxFreq,
		NumTaps:  *numTaps,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *sampleRate <= 0 {
		log.Fatalf("sample rate must be positive, got %v", *sampleRate)
	}

	bands := filterbank.PlanBands(cfg)

	if *bandIndex == noBandSelected {
		printPlan(bands, *sampleRate)
		return
	}

	if *bandIndex < 0 || *bandIndex >= len(bands) {
		log.Fatalf("band index %d out of range [0, %d)", *bandIndex, len(bands))
	}
	printBandResponse(bands[*bandIndex], *sampleRate)
}

// printPlan prints one line per band: center, passband edges, and whether
// the band survives edge clipping.
func printPlan(bands []filterbank.BandSpec, sampleRate float64) {
	nyquist := sampleRate / 2

	fmt.Printf("=== Band plan: %d bands, %d taps, %.0f Hz sample rate ===\n",
		len(bands), bands[0].NumTaps, sampleRate)
	fmt.Printf("Flat bandwidth: %.2f Hz\n\n", bands[0].Bandwidth)
	fmt.Printf("%5s %12s %12s %12s %s\n", "band", "center Hz", "low Hz", "high Hz", "status")

	degenerate := 0
	for _, b := range bands {
		low := b.CenterFreq - b.Bandwidth/2
		high := b.CenterFreq + b.Bandwidth/2

		status := "ok"
		if low < 0.001*nyquist || high > 0.999*nyquist {
			status = "clipped"
		}

		_, err := filter.DesignBandPass(filter.BandPassParams{
			CenterFreq: b.CenterFreq,
			Bandwidth:  b.Bandwidth,
			SampleRate: sampleRate,
			NumTaps:    b.NumTaps,
		})
		if err != nil {
			status = "degenerate"
			degenerate++
		}

		fmt.Printf("%5d %12.2f %12.2f %12.2f %s\n", b.Index, b.CenterFreq, low, high, status)
	}

	fmt.Printf("\n%d of %d bands degenerate\n", degenerate, len(bands))
}

// printBandResponse prints the magnitude response of one band filter from
// DC to Nyquist, plus the gain at the band center.
func printBandResponse(band filterbank.BandSpec, sampleRate float64) {
	taps, err := filter.DesignBandPass(filter.BandPassParams{
		CenterFreq: band.CenterFreq,
		Bandwidth:  band.Bandwidth,
		SampleRate: sampleRate,
		NumTaps:    band.NumTaps,
	})
	if err != nil {
		log.Fatalf("band %d: %v", band.Index, err)
	}

	nyquist := sampleRate / 2

	fmt.Printf("=== Band %d: center %.2f Hz, bandwidth %.2f Hz, %d taps ===\n",
		band.Index, band.CenterFreq, band.Bandwidth, band.NumTaps)

	centerGain := filter.MagnitudeAt(taps, band.CenterFreq/nyquist)
	fmt.Printf("Gain at center: %.6f (%.2f dB)\n\n", centerGain, filter.MagnitudeDB(centerGain))

	response := filter.ComputeFrequencyResponse(taps, responsePoints)
	fmt.Printf("%12s %12s\n", "freq Hz", "mag dB")
	for k, f := range response.Frequencies {
		fmt.Printf("%12.1f %12.2f\n", f*nyquist, filter.MagnitudeDB(response.Magnitude[k]))
	}
}
