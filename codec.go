package rawwave

import (
	"fmt"
)

// Codec loads and stores wave files through a Storage.
type Codec struct {
	storage Storage
}

// NewCodec returns a codec reading and writing through s.
// A nil Storage selects a FileStore with default settings.
func NewCodec(s Storage) *Codec {
	if s == nil {
		s = &FileStore{}
	}

	return &Codec{storage: s}
}

var defaultCodec = NewCodec(nil)

// Load reads the wave file at path from the local file system.
// See Codec.Load.
func Load(path string, left, right []float32) (Info, error) {
	return defaultCodec.Load(path, left, right)
}

// Store writes a float wave file at path on the local file system.
// See Codec.Store.
func Store(path string, sampleRate int, left, right []float32) error {
	return defaultCodec.Store(path, sampleRate, left, right)
}

// Load reads and decodes the wave file at path. It behaves like Decode.
func (c *Codec) Load(path string, left, right []float32) (Info, error) {
	data, err := c.storage.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	info, err := Decode(data, left, right)
	if err != nil {
		return info, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return info, nil
}

// Store encodes the channels like Encode and durably writes the result to
// path.
func (c *Codec) Store(path string, sampleRate int, left, right []float32) error {
	data, err := Encode(sampleRate, left, right)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	err = c.storage.WriteFile(path, data)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Decode decodes a wave file held in memory into one or two channels.
//
// A nil channel is absent. With both channels absent only the sample rate and
// frame count are reported. With one channel present every source channel is
// summed into it; with both present the source speakers are panned into left
// and right. The result is peak normalized.
//
// Channels must hold at least Info.Frames samples, otherwise ErrBufferTooSmall
// is returned together with the true Info and nothing is written.
func Decode(data []byte, left, right []float32) (Info, error) {
	tree, err := ParseChunks(data)
	if err != nil {
		return Info{}, err
	}

	format, dataChunk, err := resolveFormat(tree)
	if err != nil {
		return Info{}, err
	}

	dec, err := newFrameDecoder(format)
	if err != nil {
		return Info{}, err
	}

	info := format.Info()

	outs := presentChannels(left, right)
	if len(outs) == 0 {
		return info, nil
	}

	var pans []panWeights
	if len(outs) == 2 {
		pans, err = stereoPans(format.ChannelMask, format.NumChannels)
		if err != nil {
			return Info{}, err
		}
	}

	for _, out := range outs {
		if len(out) < info.Frames {
			return info, fmt.Errorf("%w: %d frames don't fit in %d samples", ErrBufferTooSmall, info.Frames, len(out))
		}
	}

	switch len(outs) {
	case 1:
		mono := outs[0][:info.Frames]
		decodeMono(dec, dataChunk.Data, mono)
		Normalize(mono)
	case 2:
		l, r := left[:info.Frames], right[:info.Frames]
		decodeStereo(dec, dataChunk.Data, pans, l, r)
		Normalize(l, r)
	}

	return info, nil
}

func presentChannels(left, right []float32) [][]float32 {
	out := make([][]float32, 0, 2)
	if left != nil {
		out = append(out, left)
	}

	if right != nil {
		out = append(out, right)
	}

	return out
}
