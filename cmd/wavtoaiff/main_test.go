package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"

	"github.com/cwbudde/rawwave"
)

func TestClampFloat32(t *testing.T) {
	tests := []struct {
		name  string
		value float32
		want  float32
	}{
		{name: "below", value: -2, want: -1},
		{name: "inside", value: 0.25, want: 0.25},
		{name: "above", value: 2, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampFloat32(tt.value, -1, 1)
			if got != tt.want {
				t.Fatalf("clampFloat32(%f)=%f, want %f", tt.value, got, tt.want)
			}
		})
	}
}

func TestFloat32ToPCMInt(t *testing.T) {
	tests := []struct {
		name     string
		value    float32
		bitDepth int
		want     int
	}{
		{name: "8bit min", value: -1, bitDepth: 8, want: -128},
		{name: "8bit max", value: 1, bitDepth: 8, want: 127},
		{name: "16bit half", value: 0.5, bitDepth: 16, want: 16384},
		{name: "24bit half", value: 0.5, bitDepth: 24, want: 4194304},
		{name: "32bit quarter", value: 0.25, bitDepth: 32, want: 536870912},
		{name: "unsupported", value: 0.5, bitDepth: 12, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := float32ToPCMInt(tt.value, tt.bitDepth)
			if got != tt.want {
				t.Fatalf("float32ToPCMInt(%f,%d)=%d, want %d", tt.value, tt.bitDepth, got, tt.want)
			}
		})
	}
}

func TestFloat32ToIntBuffer(t *testing.T) {
	format := &audio.Format{NumChannels: 1, SampleRate: 48000}
	in := []float32{-1.5, 0, 0.5, 1.5}

	got := float32ToIntBuffer(in, format, 16)
	if got.SourceBitDepth != 16 {
		t.Fatalf("unexpected bit depth %d", got.SourceBitDepth)
	}

	if got.Format != format {
		t.Fatalf("expected returned format pointer to match input")
	}

	want := []int{-32768, 0, 16384, 32767}
	if len(got.Data) != len(want) {
		t.Fatalf("unexpected data length %d", len(got.Data))
	}

	for i := range want {
		if got.Data[i] != want[i] {
			t.Fatalf("sample[%d]=%d, want %d", i, got.Data[i], want[i])
		}
	}
}

func TestRunConvertsStereo(t *testing.T) {
	src := filepath.Join(t.TempDir(), "take.wav")

	err := rawwave.Store(src, 22050, []float32{0.5, -0.5, 0.25}, []float32{-1, 0, 1})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer

	err = run([]string{"-path", src}, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	aifPath := strings.TrimSuffix(src, ".wav") + ".aif"
	if !strings.Contains(out.String(), aifPath) {
		t.Fatalf("unexpected output %q", out.String())
	}

	f, err := os.Open(aifPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if !aiff.NewDecoder(f).IsValidFile() {
		t.Fatalf("converted file isn't a valid aiff")
	}

	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		t.Fatal(err)
	}

	dec := aiff.NewDecoder(f)

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}

	if buf.Format.NumChannels != 2 || buf.Format.SampleRate != 22050 || int(dec.BitDepth) != 16 {
		t.Fatalf("unexpected aiff format %+v, %d bits", buf.Format, dec.BitDepth)
	}

	want := []int{16384, -32768, -16384, 0, 8192, 32767}
	if len(buf.Data) != len(want) {
		t.Fatalf("got %d samples, want %d", len(buf.Data), len(want))
	}

	for i := range want {
		if buf.Data[i] != want[i] {
			t.Fatalf("sample[%d]=%d, want %d", i, buf.Data[i], want[i])
		}
	}
}

func TestRunMonoMixdown(t *testing.T) {
	src := filepath.Join(t.TempDir(), "take.wav")

	err := rawwave.Store(src, 8000, []float32{0.5, 0}, []float32{0.5, -1})
	if err != nil {
		t.Fatal(err)
	}

	err = run([]string{"-path", src, "-mono", "-bits", "24"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	f, err := os.Open(strings.TrimSuffix(src, ".wav") + ".aif")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := aiff.NewDecoder(f)

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}

	if buf.Format.NumChannels != 1 || len(buf.Data) != 2 {
		t.Fatalf("unexpected mono output %+v %v", buf.Format, buf.Data)
	}
}

func TestRunErrors(t *testing.T) {
	testCases := []struct {
		desc string
		args []string
	}{
		{"missing path", nil},
		{"bad bit depth", []string{"-path", "x.wav", "-bits", "12"}},
		{"missing file", []string{"-path", "/nonexistent/take.wav"}},
		{"bad flag", []string{"-bits", "many"}},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			err := run(tc.args, &bytes.Buffer{})
			if err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
