package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// PPMContentType is the media type of binary PPM files
const PPMContentType = "image/x-portable-pixmap"

// EncodePPM writes frame as a binary P6 image: header, then width*height RGB
// triples, row-major, top row first
func EncodePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return fmt.Errorf("writing ppm header: %w", err)
	}

	row := make([]byte, 0, frame.Width*3)
	for y := 0; y < frame.Height; y++ {
		row = row[:0]
		for x := 0; x < frame.Width; x++ {
			rgb := ColorToRGB(frame.At(x, y))
			row = append(row, rgb[:]...)
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("writing ppm row %d: %w", y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing ppm: %w", err)
	}
	return nil
}

// WritePPM encodes frame into an already opened file and closes it
func WritePPM(file *os.File, frame *renderer.Frame) error {
	if err := EncodePPM(file, frame); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", file.Name(), err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", file.Name(), err)
	}
	return nil
}
