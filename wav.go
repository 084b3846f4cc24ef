package rawwave

import (
	"errors"
	"time"
)

var (
	// ErrMalformedFormat indicates a structural RIFF/WAVE violation such as a
	// truncated chunk, a size overrun or inconsistent fmt fields.
	ErrMalformedFormat = errors.New("malformed wave format")
	// ErrUnsupportedFormat indicates a well formed file using an encoding,
	// bit depth or channel layout that can't be decoded.
	ErrUnsupportedFormat = errors.New("unsupported wave format")
	// ErrBufferTooSmall is returned by Load when the channel buffers can't
	// hold every frame of the file. The returned Info still carries the true
	// sample rate and frame count.
	ErrBufferTooSmall = errors.New("channel buffer too small")
	// ErrNotWave indicates a RIFF container whose form type isn't WAVE.
	ErrNotWave = errors.New("RIFF form is not WAVE")
	// ErrChunkNotFound indicates a required chunk is missing.
	ErrChunkNotFound = errors.New("chunk not found")
	// ErrNoChannels is returned by Store when neither channel is provided.
	ErrNoChannels = errors.New("no channel buffer provided")
	// ErrChannelLengthMismatch is returned by Store when the left and right
	// buffers hold a different number of samples.
	ErrChannelLengthMismatch = errors.New("left and right channel lengths differ")
)

// Info describes the signal found in a wave file.
type Info struct {
	SampleRate int
	// Frames is the number of samples per channel.
	Frames int
}

// Duration returns the playing time of the signal.
func (i Info) Duration() time.Duration {
	if i.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(i.Frames) * float64(time.Second) / float64(i.SampleRate))
}

func nullTermStr(b []byte) string {
	return string(b[:clen(b)])
}

func clen(num []byte) int {
	for i := range num {
		if num[i] == 0 {
			return i
		}
	}

	return len(num)
}
