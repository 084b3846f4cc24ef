package rawwave

import (
	"testing"
	"time"
)

func TestNullTermStr(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"with null", []byte{'h', 'e', 'l', 'l', 'o', 0, 'x'}, "hello"},
		{"no null", []byte{'h', 'e', 'l', 'l', 'o'}, "hello"},
		{"empty", []byte{}, ""},
		{"only null", []byte{0}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nullTermStr(tt.in)
			if got != tt.want {
				t.Fatalf("nullTermStr(%v)=%q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClen(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int
	}{
		{"with null at 3", []byte{'a', 'b', 'c', 0, 'd'}, 3},
		{"no null", []byte{'a', 'b', 'c'}, 3},
		{"empty", []byte{}, 0},
		{"null first", []byte{0, 'a'}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clen(tt.in)
			if got != tt.want {
				t.Fatalf("clen(%v)=%d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestInfoDuration(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want time.Duration
	}{
		{"one second", Info{SampleRate: 48000, Frames: 48000}, time.Second},
		{"half second", Info{SampleRate: 44100, Frames: 22050}, 500 * time.Millisecond},
		{"empty", Info{SampleRate: 8000}, 0},
		{"no rate", Info{Frames: 100}, 0},
		{"negative rate", Info{SampleRate: -1, Frames: 100}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.info.Duration()
			if got != tt.want {
				t.Fatalf("%+v.Duration()=%v, want %v", tt.info, got, tt.want)
			}
		})
	}
}
