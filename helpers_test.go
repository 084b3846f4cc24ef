package rawwave

import (
	"bytes"
	"encoding/binary"
	"io/fs"
	"math"
	"sync"
	"testing"
)

// chunkBytes serializes a chunk header and payload, adding the pad byte after
// odd sized payloads.
func chunkBytes(id string, payload []byte) []byte {
	buf := bytes.NewBuffer(nil)
	buf.WriteString(id)
	binary.Write(buf, binary.LittleEndian, uint32(len(payload)))
	buf.Write(payload)

	if len(payload)%2 == 1 {
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

// containerBytes serializes a RIFF or LIST chunk holding the given form type
// and already serialized sub chunks.
func containerBytes(id, form string, chunks ...[]byte) []byte {
	payload := []byte(form)
	for _, c := range chunks {
		payload = append(payload, c...)
	}

	return chunkBytes(id, payload)
}

type fmtFields struct {
	tag        uint16
	channels   uint16
	sampleRate uint32
	bits       uint16
}

func (f fmtFields) blockAlign() uint16 {
	return f.channels * (f.bits / 8)
}

func fmtPayload(f fmtFields) []byte {
	buf := bytes.NewBuffer(nil)
	binary.Write(buf, binary.LittleEndian, f.tag)
	binary.Write(buf, binary.LittleEndian, f.channels)
	binary.Write(buf, binary.LittleEndian, f.sampleRate)
	binary.Write(buf, binary.LittleEndian, f.sampleRate*uint32(f.blockAlign()))
	binary.Write(buf, binary.LittleEndian, f.blockAlign())
	binary.Write(buf, binary.LittleEndian, f.bits)

	return buf.Bytes()
}

func extensibleFmtPayload(f fmtFields, validBits uint16, mask uint32, subFormat [16]byte) []byte {
	f.tag = wavFormatExtensible

	buf := bytes.NewBuffer(fmtPayload(f))
	binary.Write(buf, binary.LittleEndian, uint16(fmtExtensionSize))
	binary.Write(buf, binary.LittleEndian, validBits)
	binary.Write(buf, binary.LittleEndian, mask)
	buf.Write(subFormat[:])

	return buf.Bytes()
}

func waveBytes(fmtData, data []byte) []byte {
	return containerBytes("RIFF", "WAVE", chunkBytes("fmt ", fmtData), chunkBytes("data", data))
}

func pcm16Bytes(samples ...int16) []byte {
	buf := bytes.NewBuffer(nil)
	binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

func float32Bytes(samples ...float32) []byte {
	buf := bytes.NewBuffer(nil)
	binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

func pcm16Wave(sampleRate uint32, channels uint16, samples ...int16) []byte {
	return waveBytes(fmtPayload(fmtFields{tag: 1, channels: channels, sampleRate: sampleRate, bits: 16}), pcm16Bytes(samples...))
}

func float32ApproxEqual(value, expected, epsilon float32) bool {
	diff := value - expected
	if diff < 0 {
		diff = -diff
	}

	return diff <= epsilon
}

func assertFloat32SlicesClose(t *testing.T, got, expected []float32, epsilon float32) {
	t.Helper()

	if len(got) != len(expected) {
		t.Fatalf("expected %d samples but got %d", len(expected), len(got))
	}

	for i := range got {
		if !float32ApproxEqual(got[i], expected[i], epsilon) {
			t.Fatalf("expected %.6f at position %d, but got %.6f", expected[i], i, got[i])
		}
	}
}

func filled(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}

	return out
}

func isNaNSlice(s []float32) bool {
	for _, v := range s {
		if !math.IsNaN(float64(v)) {
			return false
		}
	}

	return true
}

// memStorage is an in-memory Storage.
type memStorage struct {
	mu     sync.Mutex
	files  map[string][]byte
	writes int
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (m *memStorage) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	return append([]byte(nil), data...), nil
}

func (m *memStorage) WriteFile(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[name] = append([]byte(nil), data...)
	m.writes++

	return nil
}
