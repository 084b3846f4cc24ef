package rawwave

import (
	"fmt"

	"github.com/go-audio/riff"
)

// SampleFormat identifies how samples are stored in the data chunk.
type SampleFormat uint16

// Format tags recognized in fmt chunks. Only FormatPCM and FormatIEEEFloat
// can be decoded.
const (
	FormatPCM       SampleFormat = 1
	FormatADPCM     SampleFormat = 2
	FormatIEEEFloat SampleFormat = 3
	FormatALaw      SampleFormat = 6
	FormatMuLaw     SampleFormat = 7
	FormatMPEG      SampleFormat = 0x50
)

func (f SampleFormat) String() string {
	switch f {
	case FormatPCM:
		return "PCM"
	case FormatADPCM:
		return "ADPCM"
	case FormatIEEEFloat:
		return "IEEE float"
	case FormatALaw:
		return "A-law"
	case FormatMuLaw:
		return "mu-law"
	case FormatMPEG:
		return "MPEG"
	default:
		return fmt.Sprintf("format tag %#x", uint16(f))
	}
}

// Format is the validated audio format of a wave file.
type Format struct {
	SampleFormat       SampleFormat
	BitsPerSample      int
	ValidBitsPerSample int
	NumChannels        int
	ChannelMask        ChannelMask
	SampleRate         int
	ByteRate           int
	BlockAlign         int
	// Frames is the number of samples per channel held by the data chunk.
	Frames int
	// Extensible is set when the fmt chunk uses WAVE_FORMAT_EXTENSIBLE.
	Extensible bool
}

// Info returns the sample rate and frame count of the format.
func (f *Format) Info() Info {
	if f == nil {
		return Info{}
	}

	return Info{SampleRate: f.SampleRate, Frames: f.Frames}
}

// ReadFormat resolves the fmt and data chunks of a parsed WAVE file.
func ReadFormat(tree *ChunkTree) (*Format, error) {
	format, _, err := resolveFormat(tree)

	return format, err
}

// Inspect parses data and returns its audio format without decoding samples.
func Inspect(data []byte) (*Format, error) {
	tree, err := ParseChunks(data)
	if err != nil {
		return nil, err
	}

	return ReadFormat(tree)
}

func resolveFormat(tree *ChunkTree) (*Format, *Chunk, error) {
	riffChunk, ok := tree.Lookup(riff.RiffID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: no RIFF chunk", ErrNotWave)
	}

	form, ok := riffChunk.FormType()
	if !ok || form != riff.WavFormatID {
		return nil, nil, fmt.Errorf("%w: form type %q", ErrNotWave, form[:])
	}

	fmtChunk, ok := tree.Lookup(riff.RiffID, riff.FmtID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %w: fmt", ErrMalformedFormat, ErrChunkNotFound)
	}

	chunk, err := decodeFmtChunk(fmtChunk.Data)
	if err != nil {
		return nil, nil, err
	}

	format := &Format{
		SampleFormat:       SampleFormat(chunk.EffectiveFormatTag()),
		BitsPerSample:      int(chunk.BitsPerSample),
		ValidBitsPerSample: int(chunk.BitsPerSample),
		NumChannels:        int(chunk.NumChannels),
		SampleRate:         int(chunk.SampleRate),
		ByteRate:           int(chunk.AvgBytesPerSec),
		BlockAlign:         int(chunk.BlockAlign),
	}

	if chunk.Extensible != nil {
		format.Extensible = true
		format.ValidBitsPerSample = int(chunk.Extensible.ValidBitsPerSample)
		format.ChannelMask = ChannelMask(chunk.Extensible.ChannelMask)
	} else {
		format.ChannelMask = defaultChannelMask(format.NumChannels)
	}

	blockAlign := uint64(chunk.NumChannels) * uint64(chunk.BitsPerSample/8)
	if uint64(chunk.BlockAlign) != blockAlign || uint64(chunk.AvgBytesPerSec) != uint64(chunk.SampleRate)*blockAlign {
		return nil, nil, fmt.Errorf("%w: block align %d and byte rate %d don't match %d channels of %d bits at %d Hz",
			ErrMalformedFormat, chunk.BlockAlign, chunk.AvgBytesPerSec, chunk.NumChannels, chunk.BitsPerSample, chunk.SampleRate)
	}

	if blockAlign == 0 {
		return nil, nil, fmt.Errorf("%w: zero block align", ErrMalformedFormat)
	}

	data, ok := tree.Lookup(riff.RiffID, riff.DataFormatID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %w: data", ErrMalformedFormat, ErrChunkNotFound)
	}

	format.Frames = len(data.Data) / format.BlockAlign

	return format, data, nil
}

// defaultChannelMask returns the speaker layout assumed for a plain fmt chunk.
// Stereo maps to the side speakers, which pan fully left and right.
func defaultChannelMask(channels int) ChannelMask {
	switch channels {
	case 1:
		return MaskOf(SpeakerFrontCenter)
	case 2:
		return MaskOf(SpeakerSideLeft, SpeakerSideRight)
	default:
		return 0
	}
}
