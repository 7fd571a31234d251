package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera is a pinhole camera looking down the negative Z axis
type Camera struct {
	Location    core.Vec3
	FocalLength float64
}

// NewCamera creates a pinhole camera at location with the given focal length
func NewCamera(location core.Vec3, focalLength float64) *Camera {
	return &Camera{
		Location:    location,
		FocalLength: focalLength,
	}
}

// GetRay returns the primary ray through pixel (x, y) of a width×height image.
// The image plane spans [-aspect, aspect]×[-1, 1] at distance FocalLength.
// The direction is intentionally left unnormalized.
func (c *Camera) GetRay(x, y, width, height int) core.Ray {
	aspect := float64(width) / float64(height)
	direction := core.NewVec3(
		((float64(x)/float64(width))*2-1)*aspect,
		-((float64(y)/float64(height))*2 - 1),
		-c.FocalLength,
	)
	return core.NewRay(c.Location, direction)
}
