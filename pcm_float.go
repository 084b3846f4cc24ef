package rawwave

import "math"

const (
	scalePCMInt8    = 127.5
	scalePCMInt16   = 32768.0
	scalePCMInt24   = 8388608.0
	scalePCMInt32   = 2147483648.0
	floatPCM8Center = 127.5

	int24SignBit = 1 << 23
	int24Range   = 1 << 24
)

// sampleDecoder converts the bytes of one sample into a normalized float.
// The slice must hold at least the sample's byte width.
type sampleDecoder func(b []byte) float32

func decodeUint8Sample(b []byte) float32 {
	return float32((float64(b[0]) - floatPCM8Center) / scalePCMInt8)
}

func decodeInt16Sample(b []byte) float32 {
	return float32(float64(int16LE(b)) / scalePCMInt16)
}

func decodeInt24Sample(b []byte) float32 {
	return float32(float64(int24LE(b)) / scalePCMInt24)
}

func decodeInt32Sample(b []byte) float32 {
	return float32(float64(int32LE(b)) / scalePCMInt32)
}

func decodeFloat32Sample(b []byte) float32 {
	return math.Float32frombits(uint32LE(b))
}

func int16LE(b []byte) int16 {
	return int16(uint16(b[0]) | uint16(b[1])<<8)
}

// int24LE assembles a 3 byte two's complement value, sign extending bit 23.
func int24LE(b []byte) int32 {
	v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	if v&int24SignBit != 0 {
		v -= int24Range
	}

	return v
}

func int32LE(b []byte) int32 {
	return int32(uint32LE(b))
}

func uint32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
