package output

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ToRGBA converts a linear frame to an 8-bit image using the same encoding as
// the PPM writer
func ToRGBA(frame *renderer.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			rgb := ColorToRGB(frame.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}
