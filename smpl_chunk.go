package rawwave

import (
	"encoding/binary"
	"fmt"
)

// smpl chunk is documented here:
// https://sites.google.com/site/musicgapi/technical-documents/wav-file-format#smpl

// CIDSmpl is the chunk ID of a sampler chunk.
var CIDSmpl = [4]byte{'s', 'm', 'p', 'l'}

const (
	smplHeaderSize = 36
	smplLoopSize   = 24
)

// SamplerInfo holds the sampler settings of a smpl chunk.
type SamplerInfo struct {
	Manufacturer      [4]byte
	Product           [4]byte
	SamplePeriod      uint32
	MIDIUnityNote     uint32
	MIDIPitchFraction uint32
	SMPTEFormat       uint32
	SMPTEOffset       uint32
	NumSampleLoops    uint32
	Loops             []*SampleLoop
}

// SampleLoop is a loop region of a smpl chunk, in sample frames.
type SampleLoop struct {
	CuePointID [4]byte
	Type       uint32
	Start      uint32
	End        uint32
	Fraction   uint32
	PlayCount  uint32
}

func decodeSamplerChunk(data []byte) (*SamplerInfo, error) {
	if len(data) < smplHeaderSize {
		return nil, fmt.Errorf("%w: smpl chunk is %d bytes, want at least %d",
			ErrMalformedFormat, len(data), smplHeaderSize)
	}

	info := &SamplerInfo{
		SamplePeriod:      binary.LittleEndian.Uint32(data[8:12]),
		MIDIUnityNote:     binary.LittleEndian.Uint32(data[12:16]),
		MIDIPitchFraction: binary.LittleEndian.Uint32(data[16:20]),
		SMPTEFormat:       binary.LittleEndian.Uint32(data[20:24]),
		SMPTEOffset:       binary.LittleEndian.Uint32(data[24:28]),
		NumSampleLoops:    binary.LittleEndian.Uint32(data[28:32]),
	}
	copy(info.Manufacturer[:], data[0:4])
	copy(info.Product[:], data[4:8])

	loops := data[smplHeaderSize:]
	if uint64(info.NumSampleLoops)*smplLoopSize > uint64(len(loops)) {
		return nil, fmt.Errorf("%w: smpl chunk declares %d loops in %d bytes",
			ErrMalformedFormat, info.NumSampleLoops, len(loops))
	}

	for i := range int(info.NumSampleLoops) {
		b := loops[i*smplLoopSize : (i+1)*smplLoopSize]

		loop := &SampleLoop{
			Type:      binary.LittleEndian.Uint32(b[4:8]),
			Start:     binary.LittleEndian.Uint32(b[8:12]),
			End:       binary.LittleEndian.Uint32(b[12:16]),
			Fraction:  binary.LittleEndian.Uint32(b[16:20]),
			PlayCount: binary.LittleEndian.Uint32(b[20:24]),
		}
		copy(loop.CuePointID[:], b[0:4])

		info.Loops = append(info.Loops, loop)
	}

	return info, nil
}
