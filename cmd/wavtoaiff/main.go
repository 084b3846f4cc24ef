// This tool converts a wav file into a mono or stereo aiff file and stores it
// in the same folder as the source.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"

	"github.com/cwbudde/rawwave"
)

var errMissingPath = errors.New("you must set the -path flag")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("wavtoaiff", flag.ContinueOnError)

	flagPath := flagSet.String("path", "", "The path to the wav file to convert to aiff")
	bitDepth := flagSet.Int("bits", 16, "aiff bit depth (8, 16, 24 or 32)")
	mono := flagSet.Bool("mono", false, "mix every channel down to mono")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *flagPath == "" {
		return errMissingPath
	}

	switch *bitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("unsupported bit depth %d", *bitDepth)
	}

	sourcePath := *flagPath
	if strings.HasPrefix(sourcePath, "~/") {
		usr, err := user.Current()
		if err != nil {
			return fmt.Errorf("failed to get the user home directory: %w", err)
		}

		sourcePath = strings.Replace(sourcePath, "~", usr.HomeDir, 1)
	}

	left, right, info, err := load(sourcePath, *mono)
	if err != nil {
		return err
	}

	channels := [][]float32{left}
	if right != nil {
		channels = append(channels, right)
	}

	outPath := sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".aif"

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	format := &audio.Format{
		NumChannels: len(channels),
		SampleRate:  info.SampleRate,
	}

	encoder := aiff.NewEncoder(outFile, info.SampleRate, *bitDepth, len(channels))

	err = encoder.Write(float32ToIntBuffer(interleave(channels, info.Frames), format, *bitDepth))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("failed to finish %s: %w", outPath, err)
	}

	fmt.Fprintf(out, "Wav file converted to %s\n", outPath)

	return nil
}

// load reads the wav file at path, sized by a first query pass.
// Sources with more than one channel are kept stereo unless mono is set.
func load(path string, mono bool) (left, right []float32, info rawwave.Info, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, info, fmt.Errorf("invalid path %s: %w", path, err)
	}

	format, err := rawwave.Inspect(data)
	if err != nil {
		return nil, nil, info, fmt.Errorf("invalid WAV file %s: %w", path, err)
	}

	left = make([]float32, format.Frames)
	if !mono && format.NumChannels > 1 {
		right = make([]float32, format.Frames)
	}

	info, err = rawwave.Decode(data, left, right)
	if err != nil {
		return nil, nil, info, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return left, right, info, nil
}

func interleave(channels [][]float32, frames int) []float32 {
	out := make([]float32, 0, frames*len(channels))
	for i := range frames {
		for _, ch := range channels {
			out = append(out, ch[i])
		}
	}

	return out
}

func float32ToIntBuffer(data []float32, format *audio.Format, bitDepth int) *audio.IntBuffer {
	intBuf := &audio.IntBuffer{
		Format:         format,
		SourceBitDepth: bitDepth,
		Data:           make([]int, len(data)),
	}
	for i, v := range data {
		intBuf.Data[i] = float32ToPCMInt(v, bitDepth)
	}

	return intBuf
}

func float32ToPCMInt(value float32, bitDepth int) int {
	value = clampFloat32(value, -1, 1)

	switch bitDepth {
	case 8:
		return int(float32ToPCMInt32(value, 8))
	case 16:
		return int(float32ToPCMInt32(value, 16))
	case 24:
		return int(float32ToPCMInt32(value, 24))
	case 32:
		return int(float32ToPCMInt32(value, 32))
	default:
		return 0
	}
}

// float32ToPCMInt32 scales to signed integers, AIFF stores 8 bit samples
// signed as well.
func float32ToPCMInt32(value float32, bitDepth int) int32 {
	value = clampFloat32(value, -1, 1)

	switch bitDepth {
	case 8:
		return clampScaledPCM(value, 128.0, 127)
	case 16:
		return clampScaledPCM(value, 32768.0, 32767)
	case 24:
		return clampScaledPCM(value, 8388608.0, 8388607)
	case 32:
		return clampScaledPCM(value, 2147483648.0, 2147483647)
	default:
		return 0
	}
}

func clampScaledPCM(value float32, scale float64, max int64) int32 {
	sample := min(int64(math.Round(float64(value)*scale)), max)

	min := int64(-scale)
	if sample < min {
		sample = min
	}

	return int32(sample)
}

func clampFloat32(value, min, max float32) float32 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}
