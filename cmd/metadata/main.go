// This tool prints the audio format and metadata of the passed wav file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/rawwave"
)

const missingPathMessage = "You must pass the path of the file to inspect"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var errMissingPath = errors.New("missing path argument")

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	data, err := (&rawwave.FileStore{}).ReadFile(args[0])
	if err != nil {
		return err
	}

	format, err := rawwave.Inspect(data)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", args[0], err)
	}

	fmt.Fprintf(out, "Format: %s, %d bits (%d valid)\n", format.SampleFormat, format.BitsPerSample, format.ValidBitsPerSample)
	fmt.Fprintf(out, "Channels: %d [%s]\n", format.NumChannels, format.ChannelMask)
	fmt.Fprintf(out, "Sample rate: %d Hz\n", format.SampleRate)
	fmt.Fprintf(out, "Duration: %s (%d frames)\n", format.Info().Duration(), format.Frames)

	md, err := rawwave.ReadMetadata(data)
	if err != nil {
		return fmt.Errorf("failed to read metadata of %s: %w", args[0], err)
	}

	if md == nil {
		fmt.Fprintln(out, "No metadata present")
		return nil
	}

	fmt.Fprintf(out, "Artist: %s\n", md.Artist)
	fmt.Fprintf(out, "Title: %s\n", md.Title)
	fmt.Fprintf(out, "Comments: %s\n", md.Comments)
	fmt.Fprintf(out, "Copyright: %s\n", md.Copyright)
	fmt.Fprintf(out, "CreationDate: %s\n", md.CreationDate)
	fmt.Fprintf(out, "Engineer: %s\n", md.Engineer)
	fmt.Fprintf(out, "Technician: %s\n", md.Technician)
	fmt.Fprintf(out, "Genre: %s\n", md.Genre)
	fmt.Fprintf(out, "Keywords: %s\n", md.Keywords)
	fmt.Fprintf(out, "Medium: %s\n", md.Medium)
	fmt.Fprintf(out, "Product: %s\n", md.Product)
	fmt.Fprintf(out, "Subject: %s\n", md.Subject)
	fmt.Fprintf(out, "Software: %s\n", md.Software)
	fmt.Fprintf(out, "Source: %s\n", md.Source)
	fmt.Fprintf(out, "Location: %s\n", md.Location)
	fmt.Fprintf(out, "TrackNbr: %s\n", md.TrackNbr)

	if bext := md.BroadcastExtension; bext != nil {
		fmt.Fprintln(out, "Broadcast Extension:")
		fmt.Fprintf(out, "\tdescription: %s\n\toriginator: %s\n\torigination: %s %s\n\ttime reference: %d\n",
			bext.Description, bext.Originator, bext.OriginationDate, bext.OriginationTime, bext.TimeReference)
	}

	fmt.Fprintln(out, "Sample Info:")
	fmt.Fprintf(out, "%+v\n", md.SamplerInfo)

	if md.SamplerInfo != nil {
		for i, l := range md.SamplerInfo.Loops {
			fmt.Fprintf(out, "\tloop [%d]:\t%+v\n", i, l)
		}
	}

	return nil
}
