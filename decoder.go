package rawwave

import (
	"fmt"
)

// frameDecoder decodes interleaved frames into one normalized float per source
// channel. It never averages or clips.
type frameDecoder struct {
	decode   sampleDecoder
	width    int
	channels int
	frame    []float32
}

func newFrameDecoder(format *Format) (*frameDecoder, error) {
	decode, err := sampleDecodeFunc(format.SampleFormat, format.BitsPerSample)
	if err != nil {
		return nil, err
	}

	return &frameDecoder{
		decode:   decode,
		width:    format.BitsPerSample / 8,
		channels: format.NumChannels,
		frame:    make([]float32, format.NumChannels),
	}, nil
}

// decodeFrame decodes frame i of data. The returned slice is reused by the
// next call.
func (d *frameDecoder) decodeFrame(data []byte, i int) []float32 {
	offset := i * d.width * d.channels
	for ch := range d.channels {
		d.frame[ch] = d.decode(data[offset : offset+d.width])
		offset += d.width
	}

	return d.frame
}

// sampleDecodeFunc returns the decoder for a sample encoding.
// Note that 8bit PCM samples are unsigned, all other widths are signed.
func sampleDecodeFunc(format SampleFormat, bitsPerSample int) (sampleDecoder, error) {
	switch format {
	case FormatPCM:
		switch bitsPerSample {
		case 8:
			return decodeUint8Sample, nil
		case 16:
			return decodeInt16Sample, nil
		case 24:
			return decodeInt24Sample, nil
		case 32:
			return decodeInt32Sample, nil
		}
	case FormatIEEEFloat:
		if bitsPerSample == 32 {
			return decodeFloat32Sample, nil
		}
	}

	return nil, fmt.Errorf("%w: %d bit %s", ErrUnsupportedFormat, bitsPerSample, format)
}
