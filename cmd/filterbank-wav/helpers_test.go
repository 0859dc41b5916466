package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	filterbank "github.com/tphakala/go-audio-filterbank"
)

func TestDownmixMonoPassthrough(t *testing.T) {
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: 44100},
		Data:   []int{0, 16384, -16384, 32767},
	}

	samples := downmixMono(buf, 1.0/maxInt16)
	require.Len(t, samples, 4)

	assert.InDelta(t, 0.0, samples[0], 1e-12)
	assert.InDelta(t, 16384.0/maxInt16, samples[1], 1e-12)
	assert.InDelta(t, -16384.0/maxInt16, samples[2], 1e-12)
	assert.InDelta(t, 1.0, samples[3], 1e-12)
}

func TestDownmixMonoStereoMean(t *testing.T) {
	// Interleaved L/R frames downmix to the channel mean
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 2, SampleRate: 44100},
		Data:   []int{100, 300, -200, 200, 32767, 32767},
	}

	samples := downmixMono(buf, 1.0/maxInt16)
	require.Len(t, samples, 3)

	assert.InDelta(t, 200.0/maxInt16, samples[0], 1e-12)
	assert.InDelta(t, 0.0, samples[1], 1e-12)
	assert.InDelta(t, 1.0, samples[2], 1e-12)
}

func TestMaxValueForBitDepth(t *testing.T) {
	assert.Equal(t, maxInt16, maxValueForBitDepth(16))
	assert.Equal(t, maxInt24, maxValueForBitDepth(24))
	assert.Equal(t, maxInt32, maxValueForBitDepth(32))

	// Unknown depths fall back to 16-bit
	assert.Equal(t, maxInt16, maxValueForBitDepth(8))
}

func TestWriteWAVMonoRoundtrip(t *testing.T) {
	for _, bitDepth := range []int{16, 24, 32} {
		path := filepath.Join(t.TempDir(), "out.wav")

		in := []float64{0.0, 0.5, -0.5, 1.0, -1.0, 0.25}
		require.NoError(t, writeWAVMono(path, in, 44100, bitDepth), "bitDepth=%d", bitDepth)

		got, err := readWAVMono(path)
		require.NoError(t, err, "bitDepth=%d", bitDepth)

		assert.Equal(t, 44100, got.rate)
		assert.Equal(t, 1, got.channels)
		assert.Equal(t, bitDepth, got.bitDepth)
		require.Len(t, got.samples, len(in))

		// Quantization error is bounded by one LSB at the written depth
		tol := 1.0 / maxValueForBitDepth(bitDepth)
		for i := range in {
			assert.InDelta(t, in[i], got.samples[i], tol, "bitDepth=%d sample %d", bitDepth, i)
		}
	}
}

func TestWriteWAVMonoClampsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clamp.wav")

	require.NoError(t, writeWAVMono(path, []float64{2.0, -3.0}, 48000, 16))

	got, err := readWAVMono(path)
	require.NoError(t, err)
	require.Len(t, got.samples, 2)

	assert.InDelta(t, 1.0, got.samples[0], 1e-4)
	assert.InDelta(t, -1.0, got.samples[1], 1e-4)
}

func TestFastWAVWriterHeaderSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hdr.wav")

	const numSamples = 100
	samples := make([]float64, numSamples)
	require.NoError(t, writeWAVMono(path, samples, 44100, 16))

	// The patched header must describe exactly the written payload
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(wavHeaderSize+numSamples*bytesPerSample16), info.Size())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	require.True(t, decoder.IsValidFile())

	buf, err := decoder.FullPCMBuffer()
	require.NoError(t, err)
	assert.Len(t, buf.Data, numSamples)
}

func TestParseWindow(t *testing.T) {
	w, err := parseWindow("hamming")
	require.NoError(t, err)
	assert.Equal(t, filterbank.WindowHamming, w)

	w, err = parseWindow("kaiser")
	require.NoError(t, err)
	assert.Equal(t, filterbank.WindowKaiser, w)

	// Case-insensitive, matching the other string flags
	w, err = parseWindow("Kaiser")
	require.NoError(t, err)
	assert.Equal(t, filterbank.WindowKaiser, w)
}

func TestParseWindowRejectsUnknown(t *testing.T) {
	// A typo must fail loudly, not silently select the default window
	for _, name := range []string{"kasier", "hann", ""} {
		_, err := parseWindow(name)
		require.Error(t, err, "name %q", name)
	}
}

func TestReadWAVMonoRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))

	_, err := readWAVMono(path)
	require.Error(t, err)
}

func TestReadWAVMonoMissingFile(t *testing.T) {
	_, err := readWAVMono(filepath.Join(t.TempDir(), "nope.wav"))
	require.Error(t, err)
}
