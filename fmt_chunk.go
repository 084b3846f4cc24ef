package rawwave

import (
	"encoding/binary"
	"fmt"
)

const (
	wavFormatExtensible = 0xFFFE

	fmtChunkBaseSize     = 16
	fmtExtensionSize     = 22
	fmtExtensibleMinSize = fmtChunkBaseSize + 2 + fmtExtensionSize

	ksSubFormatGUIDTail0  = 0x00
	ksSubFormatGUIDTail1  = 0x00
	ksSubFormatGUIDTail2  = 0x10
	ksSubFormatGUIDTail3  = 0x00
	ksSubFormatGUIDTail4  = 0x80
	ksSubFormatGUIDTail5  = 0x00
	ksSubFormatGUIDTail6  = 0x00
	ksSubFormatGUIDTail7  = 0xAA
	ksSubFormatGUIDTail8  = 0x00
	ksSubFormatGUIDTail9  = 0x38
	ksSubFormatGUIDTail10 = 0x9B
	ksSubFormatGUIDTail11 = 0x71
)

// knownSubFormats lists the KSDATAFORMAT sub types accepted in an extensible
// fmt chunk.
var knownSubFormats = []SampleFormat{
	FormatPCM,
	FormatIEEEFloat,
	FormatALaw,
	FormatMuLaw,
	FormatADPCM,
	FormatMPEG,
}

// FmtChunk stores the fields of a WAV fmt chunk, including extensible data.
type FmtChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	Extensible     *FmtExtensible
}

// FmtExtensible stores WAVE_FORMAT_EXTENSIBLE extra fields.
type FmtExtensible struct {
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          [16]byte
}

// EffectiveFormatTag returns the sub format tag of an extensible chunk and
// the plain format tag otherwise.
func (f *FmtChunk) EffectiveFormatTag() uint16 {
	if f == nil {
		return 0
	}

	if f.FormatTag == wavFormatExtensible && f.Extensible != nil {
		return binary.LittleEndian.Uint16(f.Extensible.SubFormat[:2])
	}

	return f.FormatTag
}

func decodeFmtChunk(data []byte) (*FmtChunk, error) {
	if len(data) < fmtChunkBaseSize {
		return nil, fmt.Errorf("%w: fmt chunk is %d bytes, want at least %d",
			ErrMalformedFormat, len(data), fmtChunkBaseSize)
	}

	chunk := &FmtChunk{
		FormatTag:      binary.LittleEndian.Uint16(data[0:2]),
		NumChannels:    binary.LittleEndian.Uint16(data[2:4]),
		SampleRate:     binary.LittleEndian.Uint32(data[4:8]),
		AvgBytesPerSec: binary.LittleEndian.Uint32(data[8:12]),
		BlockAlign:     binary.LittleEndian.Uint16(data[12:14]),
		BitsPerSample:  binary.LittleEndian.Uint16(data[14:16]),
	}

	if chunk.FormatTag != wavFormatExtensible {
		return chunk, nil
	}

	if len(data) <= fmtChunkBaseSize+1 {
		return nil, fmt.Errorf("%w: extensible fmt chunk without extension size", ErrMalformedFormat)
	}

	extSize := binary.LittleEndian.Uint16(data[16:18])
	if extSize != fmtExtensionSize || len(data) < fmtExtensibleMinSize {
		return nil, fmt.Errorf("%w: extensible fmt extension of %d bytes in a %d byte chunk",
			ErrMalformedFormat, extSize, len(data))
	}

	ext := &FmtExtensible{
		ValidBitsPerSample: binary.LittleEndian.Uint16(data[18:20]),
		ChannelMask:        binary.LittleEndian.Uint32(data[20:24]),
	}
	copy(ext.SubFormat[:], data[24:40])

	if ext.ValidBitsPerSample > chunk.BitsPerSample {
		return nil, fmt.Errorf("%w: %d valid bits in a %d bit sample",
			ErrMalformedFormat, ext.ValidBitsPerSample, chunk.BitsPerSample)
	}

	if ChannelMask(ext.ChannelMask)&^validChannelMask != 0 {
		return nil, fmt.Errorf("%w: channel mask %#x names unknown speakers", ErrMalformedFormat, ext.ChannelMask)
	}

	if _, ok := subFormatFromGUID(ext.SubFormat); !ok {
		return nil, fmt.Errorf("%w: sub format % x", ErrUnsupportedFormat, ext.SubFormat)
	}

	chunk.Extensible = ext

	return chunk, nil
}

func subFormatFromGUID(guid [16]byte) (SampleFormat, bool) {
	for _, format := range knownSubFormats {
		if makeSubFormatGUID(uint16(format)) == guid {
			return format, true
		}
	}

	return 0, false
}

func makeSubFormatGUID(formatTag uint16) [16]byte {
	var guid [16]byte
	binary.LittleEndian.PutUint32(guid[:4], uint32(formatTag))
	guid[4] = ksSubFormatGUIDTail0
	guid[5] = ksSubFormatGUIDTail1
	guid[6] = ksSubFormatGUIDTail2
	guid[7] = ksSubFormatGUIDTail3
	guid[8] = ksSubFormatGUIDTail4
	guid[9] = ksSubFormatGUIDTail5
	guid[10] = ksSubFormatGUIDTail6
	guid[11] = ksSubFormatGUIDTail7
	guid[12] = ksSubFormatGUIDTail8
	guid[13] = ksSubFormatGUIDTail9
	guid[14] = ksSubFormatGUIDTail10
	guid[15] = ksSubFormatGUIDTail11

	return guid
}
