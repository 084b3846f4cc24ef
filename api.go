package rawwave

import (
	"errors"
	"fmt"

	"github.com/go-audio/audio"
)

var errNilBuffer = errors.New("can't encode a nil buffer")

// DecodeBuffer decodes a wave file held in memory into an interleaved
// go-audio buffer with numChannels (1 or 2) channels, mixed and normalized
// like Decode.
func DecodeBuffer(data []byte, numChannels int) (*audio.Float32Buffer, error) {
	if numChannels != 1 && numChannels != 2 {
		return nil, fmt.Errorf("%w: can't mix down to %d channels", ErrUnsupportedFormat, numChannels)
	}

	format, err := Inspect(data)
	if err != nil {
		return nil, err
	}

	channels := make([][]float32, numChannels)
	for ch := range channels {
		channels[ch] = make([]float32, format.Frames)
	}

	var right []float32
	if numChannels == 2 {
		right = channels[1]
	}

	_, err = Decode(data, channels[0], right)
	if err != nil {
		return nil, err
	}

	return &audio.Float32Buffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  format.SampleRate,
		},
		Data:           interleave(channels),
		SourceBitDepth: format.BitsPerSample,
	}, nil
}

// EncodeBuffer encodes an interleaved mono or stereo go-audio buffer like
// Encode. The buffer isn't modified.
func EncodeBuffer(buf *audio.Float32Buffer) ([]byte, error) {
	if buf == nil || buf.Format == nil {
		return nil, errNilBuffer
	}

	numChans := buf.Format.NumChannels
	if numChans != 1 && numChans != 2 {
		return nil, fmt.Errorf("%w: can't encode %d channels", ErrUnsupportedFormat, numChans)
	}

	frames := len(buf.Data) / numChans
	channels := make([][]float32, numChans)

	for ch := range channels {
		channels[ch] = make([]float32, frames)
		for i := range frames {
			channels[ch][i] = buf.Data[i*numChans+ch]
		}
	}

	var right []float32
	if numChans == 2 {
		right = channels[1]
	}

	return Encode(buf.Format.SampleRate, channels[0], right)
}
