package rawwave

import (
	"fmt"
	"math/bits"
	"strings"
)

// Speaker is a WAVE_FORMAT_EXTENSIBLE speaker position, numbered by its bit in
// the channel mask.
type Speaker uint8

// Speaker positions in channel mask bit order.
const (
	SpeakerFrontLeft Speaker = iota
	SpeakerFrontRight
	SpeakerFrontCenter
	SpeakerLowFrequency
	SpeakerBackLeft
	SpeakerBackRight
	SpeakerFrontLeftOfCenter
	SpeakerFrontRightOfCenter
	SpeakerBackCenter
	SpeakerSideLeft
	SpeakerSideRight
	SpeakerTopCenter
	SpeakerTopFrontLeft
	SpeakerTopFrontCenter
	SpeakerTopFrontRight
	SpeakerTopBackLeft
	SpeakerTopBackCenter
	SpeakerTopBackRight

	numSpeakers = iota
)

var speakerNames = [numSpeakers]string{
	"FL", "FR", "FC", "LFE", "BL", "BR", "FLC", "FRC", "BC",
	"SL", "SR", "TC", "TFL", "TFC", "TFR", "TBL", "TBC", "TBR",
}

type panWeights struct {
	left, right float32
}

// panTable holds the stereo downmix weights of every speaker position.
var panTable = [numSpeakers]panWeights{
	SpeakerFrontLeft:          {0.75, 0.25},
	SpeakerFrontRight:         {0.25, 0.75},
	SpeakerFrontCenter:        {0.5, 0.5},
	SpeakerLowFrequency:       {0.5, 0.5},
	SpeakerBackLeft:           {0.75, 0.25},
	SpeakerBackRight:          {0.25, 0.75},
	SpeakerFrontLeftOfCenter:  {0.75, 0.25},
	SpeakerFrontRightOfCenter: {0.25, 0.75},
	SpeakerBackCenter:         {0.5, 0.5},
	SpeakerSideLeft:           {1, 0},
	SpeakerSideRight:          {0, 1},
	SpeakerTopCenter:          {0.5, 0.5},
	SpeakerTopFrontLeft:       {0.75, 0.25},
	SpeakerTopFrontCenter:     {0.5, 0.5},
	SpeakerTopFrontRight:      {0.25, 0.75},
	SpeakerTopBackLeft:        {0.75, 0.25},
	SpeakerTopBackCenter:      {0.5, 0.5},
	SpeakerTopBackRight:       {0.25, 0.75},
}

// Pan returns the left and right weights used when the speaker is mixed down
// to stereo. They always sum to 1.
func (s Speaker) Pan() (left, right float32) {
	if s >= numSpeakers {
		return 0, 0
	}

	w := panTable[s]

	return w.left, w.right
}

func (s Speaker) String() string {
	if s >= numSpeakers {
		return fmt.Sprintf("speaker(%d)", uint8(s))
	}

	return speakerNames[s]
}

// ChannelMask is a bit set of speaker positions.
type ChannelMask uint32

const validChannelMask ChannelMask = 1<<numSpeakers - 1

// MaskOf builds a channel mask naming the given speakers.
func MaskOf(speakers ...Speaker) ChannelMask {
	var m ChannelMask
	for _, s := range speakers {
		m |= 1 << s
	}

	return m
}

// Has reports whether the speaker is part of the mask.
func (m ChannelMask) Has(s Speaker) bool {
	return m&(1<<s) != 0
}

// Count returns the number of speakers named by the mask.
func (m ChannelMask) Count() int {
	return bits.OnesCount32(uint32(m))
}

// Speakers returns the known speakers of the mask in ascending bit order,
// which is the order their channels appear in a frame.
func (m ChannelMask) Speakers() []Speaker {
	out := make([]Speaker, 0, (m & validChannelMask).Count())

	for s := Speaker(0); s < numSpeakers; s++ {
		if m.Has(s) {
			out = append(out, s)
		}
	}

	return out
}

func (m ChannelMask) String() string {
	names := make([]string, 0, m.Count())
	for _, s := range m.Speakers() {
		names = append(names, s.String())
	}

	if rest := m &^ validChannelMask; rest != 0 {
		names = append(names, fmt.Sprintf("%#x", uint32(rest)))
	}

	return strings.Join(names, "+")
}
