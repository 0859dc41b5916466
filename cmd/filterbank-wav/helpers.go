package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// WAV format constants
	wavHeaderSize      = 44 // Total WAV header size in bytes
	wavRiffHeaderSize  = 36 // RIFF header size (file size - 8 = riffHeaderSize + dataSize)
	wavPCMSubchunkSize = 16 // fmt subchunk size for PCM format
	wavFileSizeOffset  = 4  // Byte offset for file size field in header
	wavDataSizeOffset  = 40 // Byte offset for data size field in header

	// Byte sizes for PCM sample formats
	bytesPerSample16 = 2
	bytesPerSample24 = 3
	bytesPerSample32 = 4
	bitsPerByte      = 8

	// Bit shift amounts for 24-bit sample encoding
	bitShift8  = 8
	bitShift16 = 16

	// I/O buffer sizes
	wavWriterBufferSize = 256 * 1024 // 256KB write buffer
	uint32Size          = 4
)

// wavInput holds a decoded, mono-downmixed WAV file.
type wavInput struct {
	samples  []float64 // normalized to [-1, 1]
	rate     int
	channels int // channel count before downmix
	bitDepth int
}

// readWAVMono decodes a whole WAV file into memory, normalizes samples to
// [-1, 1], and downmixes multi-channel audio to mono by sample-wise
// channel mean. The filterbank holds the full waveform resident, so the
// file is read in one shot rather than streamed.
func readWAVMono(path string) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("invalid WAV file: no channels")
	}
	bitDepth := int(decoder.BitDepth)

	samples := downmixMono(buf, 1.0/maxValueForBitDepth(bitDepth))

	return &wavInput{
		samples:  samples,
		rate:     buf.Format.SampleRate,
		channels: channels,
		bitDepth: bitDepth,
	}, nil
}

// downmixMono converts an interleaved PCM buffer to a normalized mono
// float64 signal by averaging channels sample-wise.
func downmixMono(buf *audio.IntBuffer, invMaxVal float64) []float64 {
	data := buf.Data
	channels := buf.Format.NumChannels
	frames := len(data) / channels
	samples := make([]float64, frames)

	// Fast path for mono input
	if channels == 1 {
		for i := range frames {
			samples[i] = float64(data[i]) * invMaxVal
		}
		return samples
	}

	invChannels := 1.0 / float64(channels)
	for i := range frames {
		base := i * channels
		var sum float64
		for ch := range channels {
			sum += float64(data[base+ch])
		}
		samples[i] = sum * invChannels * invMaxVal
	}

	return samples
}

// maxValueForBitDepth returns the maximum sample value for a bit depth.
func maxValueForBitDepth(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// writeWAVMono writes normalized float64 samples as a mono PCM WAV file at
// the given bit depth.
func writeWAVMono(path string, samples []float64, sampleRate, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	writer, err := newFastWAVWriter(f, sampleRate, bitDepth)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to create WAV writer: %w", err)
	}

	// Denormalize with clamping to [-1, 1]
	maxVal := maxValueForBitDepth(bitDepth)
	data := make([]int, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		data[i] = int(s * maxVal)
	}

	if err := writer.WriteSamples(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write audio data: %w", err)
	}

	if err := writer.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}

	return f.Close()
}

// fastWAVWriter writes mono PCM data directly without per-sample
// allocations, patching the header sizes on Close.
type fastWAVWriter struct {
	w          *bufio.Writer
	f          *os.File
	sampleRate int
	bitDepth   int
	dataSize   uint32
}

// newFastWAVWriter creates a mono WAV writer and emits a header with
// placeholder size fields.
func newFastWAVWriter(f *os.File, sampleRate, bitDepth int) (*fastWAVWriter, error) {
	w := &fastWAVWriter{
		w:          bufio.NewWriterSize(f, wavWriterBufferSize),
		f:          f,
		sampleRate: sampleRate,
		bitDepth:   bitDepth,
	}

	if err := w.writeHeader(); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *fastWAVWriter) writeHeader() error {
	bytesPerSample := w.bitDepth / bitsPerByte
	byteRate := w.sampleRate * bytesPerSample

	header := make([]byte, wavHeaderSize)

	// RIFF header
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 0) // Placeholder for file size - 8
	copy(header[8:12], "WAVE")

	// fmt subchunk (mono PCM)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavPCMSubchunkSize)
	binary.LittleEndian.PutUint16(header[20:22], 1) // AudioFormat (1 = PCM)
	binary.LittleEndian.PutUint16(header[22:24], 1) // NumChannels
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(bytesPerSample)) // BlockAlign
	binary.LittleEndian.PutUint16(header[34:36], uint16(w.bitDepth))

	// data subchunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], 0) // Placeholder for data size

	_, err := w.w.Write(header)
	return err
}

// WriteSamples writes PCM samples using the writer's bit depth.
func (w *fastWAVWriter) WriteSamples(samples []int) error {
	switch w.bitDepth {
	case bitsPerSample24:
		return w.writeSamples24(samples)
	case bitsPerSample32:
		return w.writeSamples32(samples)
	default:
		return w.writeSamples16(samples)
	}
}

func (w *fastWAVWriter) writeSamples16(samples []int) error {
	buf := make([]byte, len(samples)*bytesPerSample16)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*bytesPerSample16:], uint16(int16(s)))
	}

	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	return err
}

func (w *fastWAVWriter) writeSamples24(samples []int) error {
	buf := make([]byte, len(samples)*bytesPerSample24)
	for i, s := range samples {
		buf[i*bytesPerSample24] = byte(s)
		buf[i*bytesPerSample24+1] = byte(s >> bitShift8)
		buf[i*bytesPerSample24+2] = byte(s >> bitShift16)
	}

	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	return err
}

func (w *fastWAVWriter) writeSamples32(samples []int) error {
	buf := make([]byte, len(samples)*bytesPerSample32)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*bytesPerSample32:], uint32(int32(s)))
	}

	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	return err
}

// Close flushes the buffer and updates the WAV header with final sizes.
func (w *fastWAVWriter) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}

	fileSize := wavRiffHeaderSize + w.dataSize

	if _, err := w.f.Seek(wavFileSizeOffset, io.SeekStart); err != nil {
		return err
	}
	sizeBytes := make([]byte, uint32Size)
	binary.LittleEndian.PutUint32(sizeBytes, fileSize)
	if _, err := w.f.Write(sizeBytes); err != nil {
		return err
	}

	if _, err := w.f.Seek(wavDataSizeOffset, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, w.dataSize)
	if _, err := w.f.Write(sizeBytes); err != nil {
		return err
	}

	return nil
}
