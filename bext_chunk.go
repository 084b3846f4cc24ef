package rawwave

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// CIDBext is the chunk ID of a Broadcast Wave extension chunk.
var CIDBext = [4]byte{'b', 'e', 'x', 't'}

const (
	bextDescriptionLen         = 256
	bextOriginatorLen          = 32
	bextOriginatorReferenceLen = 32
	bextOriginationDateLen     = 10
	bextOriginationTimeLen     = 8
	bextUMIDLen                = 64
	bextReservedLen            = 190
)

// BroadcastExtension holds the EBU Tech 3285 bext chunk fields.
type BroadcastExtension struct {
	Description         string
	Originator          string
	OriginatorReference string
	OriginationDate     string
	OriginationTime     string
	// TimeReference is the first sample's offset since midnight.
	TimeReference uint64
	Version       uint16
	UMID          [64]byte
	CodingHistory string
}

// decodeBroadcastChunk reads a bext payload. Fields past the end of a short
// payload are left empty.
func decodeBroadcastChunk(data []byte) *BroadcastExtension {
	bext := &BroadcastExtension{}
	offset := 0

	take := func(n int) []byte {
		out := make([]byte, n)
		if offset < len(data) {
			copy(out, data[offset:min(offset+n, len(data))])
		}

		offset += n

		return out
	}

	readFixedString := func(n int) string {
		return strings.TrimRight(nullTermStr(take(n)), " ")
	}

	bext.Description = readFixedString(bextDescriptionLen)
	bext.Originator = readFixedString(bextOriginatorLen)
	bext.OriginatorReference = readFixedString(bextOriginatorReferenceLen)
	bext.OriginationDate = readFixedString(bextOriginationDateLen)
	bext.OriginationTime = readFixedString(bextOriginationTimeLen)

	timeRefLow := binary.LittleEndian.Uint32(take(4))
	timeRefHigh := binary.LittleEndian.Uint32(take(4))
	bext.TimeReference = uint64(timeRefHigh)<<32 | uint64(timeRefLow)
	bext.Version = binary.LittleEndian.Uint16(take(2))

	copy(bext.UMID[:], take(bextUMIDLen))
	take(bextReservedLen)

	if offset < len(data) {
		bext.CodingHistory = string(bytes.TrimRight(data[offset:], "\x00"))
	}

	return bext
}
