package rawwave

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-audio/riff"
)

const (
	waveHeaderSize  = 44
	floatBitDepth   = 32
	floatSampleSize = floatBitDepth / 8
)

// waveHeader is the canonical 44 byte header of a float wave file.
type waveHeader struct {
	RiffID         [4]byte
	RiffSize       uint32
	WaveID         [4]byte
	FmtID          [4]byte
	FmtSize        uint32
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	DataID         [4]byte
	DataSize       uint32
}

// Encode builds a 32-bit IEEE float wave file from one or two channels.
// A nil channel is absent: one channel gives a mono file, two a stereo file.
// The samples are peak normalized on a copy; left and right are not modified.
func Encode(sampleRate int, left, right []float32) ([]byte, error) {
	channels := presentChannels(left, right)
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	if len(channels) == 2 && len(left) != len(right) {
		return nil, fmt.Errorf("%w: %d left and %d right samples", ErrChannelLengthMismatch, len(left), len(right))
	}

	samples := interleave(channels)
	Normalize(samples)

	return encodeFloatWave(sampleRate, len(channels), samples)
}

func encodeFloatWave(sampleRate, numChans int, samples []float32) ([]byte, error) {
	blockAlign := numChans * floatSampleSize

	if sampleRate <= 0 || uint64(sampleRate)*uint64(blockAlign) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, sampleRate)
	}

	dataSize := uint64(len(samples)) * floatSampleSize
	if dataSize > math.MaxUint32-(waveHeaderSize-chunkHeaderSize) {
		return nil, fmt.Errorf("%w: %d samples don't fit in a RIFF file", ErrUnsupportedFormat, len(samples))
	}

	hdr := waveHeader{
		RiffID:         riff.RiffID,
		RiffSize:       uint32(waveHeaderSize - chunkHeaderSize + dataSize),
		WaveID:         riff.WavFormatID,
		FmtID:          riff.FmtID,
		FmtSize:        fmtChunkBaseSize,
		FormatTag:      uint16(FormatIEEEFloat),
		NumChannels:    uint16(numChans),
		SampleRate:     uint32(sampleRate),
		AvgBytesPerSec: uint32(sampleRate * blockAlign),
		BlockAlign:     uint16(blockAlign),
		BitsPerSample:  floatBitDepth,
		DataID:         riff.DataFormatID,
		DataSize:       uint32(dataSize),
	}

	buf := bytes.NewBuffer(make([]byte, 0, waveHeaderSize+int(dataSize)))

	err := binary.Write(buf, binary.LittleEndian, &hdr)
	if err != nil {
		return nil, fmt.Errorf("failed to write wave header: %w", err)
	}

	err = binary.Write(buf, binary.LittleEndian, samples)
	if err != nil {
		return nil, fmt.Errorf("failed to write float samples: %w", err)
	}

	return buf.Bytes(), nil
}

// interleave copies the channels into a single frame ordered buffer.
// All channels must have the same length.
func interleave(channels [][]float32) []float32 {
	if len(channels) == 1 {
		return append([]float32(nil), channels[0]...)
	}

	frames := len(channels[0])
	out := make([]float32, frames*len(channels))

	for i := range frames {
		for ch, signal := range channels {
			out[i*len(channels)+ch] = signal[i]
		}
	}

	return out
}
