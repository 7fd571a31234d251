package output

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Gamma is the display gamma applied when quantizing linear color
const Gamma = 2.2

var (
	black = core.NewVec3(0, 0, 0)
	white = core.NewVec3(1, 1, 1)
)

// EncodeComponent clamps a linear channel to [0,1], gamma encodes it and
// quantizes it to a byte. NaN encodes as 0.
func EncodeComponent(c float64) uint8 {
	rgb := ColorToRGB(core.NewVec3(c, c, c))
	return rgb[0]
}

// ColorToRGB encodes a linear color as three display bytes
func ColorToRGB(color core.Vec3) [3]byte {
	encoded := color.Clamp(black, white).GammaCorrect(Gamma)
	return [3]byte{quantize(encoded.X), quantize(encoded.Y), quantize(encoded.Z)}
}

func quantize(c float64) byte {
	if math.IsNaN(c) {
		return 0
	}
	return byte(math.Round(c * 255))
}
