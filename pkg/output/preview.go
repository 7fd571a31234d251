package output

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/nfnt/resize"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// PNGContentType is the media type of preview images
const PNGContentType = "image/png"

// Thumbnail downscales the encoded frame to maxWidth, preserving aspect
// ratio. Frames already narrower than maxWidth are returned at full size.
func Thumbnail(frame *renderer.Frame, maxWidth int) image.Image {
	img := ToRGBA(frame)
	if maxWidth <= 0 || frame.Width <= maxWidth {
		return img
	}
	// Height 0 lets resize keep the aspect ratio
	return resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)
}

// EncodePreview writes a PNG thumbnail of frame to w
func EncodePreview(w io.Writer, frame *renderer.Frame, maxWidth int) error {
	if err := png.Encode(w, Thumbnail(frame, maxWidth)); err != nil {
		return fmt.Errorf("encoding preview: %w", err)
	}
	return nil
}
