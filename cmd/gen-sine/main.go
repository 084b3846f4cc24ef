package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/cwbudde/rawwave"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-sine", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	sampleRate := flagSet.Int("rate", 48000, "sample rate in hertz")
	stereo := flagSet.Bool("stereo", false, "write a stereo file, the right channel a quarter period behind")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", *sampleRate)
	}

	log.Printf("generating a %f sec sine wav at %f hz", *length, *frequency)

	numSamples := int(float64(*sampleRate) * *length)
	left := make([]float32, numSamples)

	var right []float32
	if *stereo {
		right = make([]float32, numSamples)
	}

	for i := range numSamples {
		phase := float64(i) / float64(*sampleRate) * *frequency * 2 * math.Pi
		left[i] = float32(math.Sin(phase))

		if right != nil {
			right[i] = float32(math.Sin(phase - math.Pi/2))
		}
	}

	err = rawwave.Store(*output, *sampleRate, left, right)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", *output, err)
	}

	return nil
}
