package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// CameraConfig positions the pinhole camera
type CameraConfig struct {
	Location    core.Vec3
	FocalLength float64
}

// DefaultCameraConfig returns the camera used by the built-in scenes
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Location:    core.NewVec3(0, 2, 15),
		FocalLength: 3.0,
	}
}

// CameraOverrides replaces individual fields of a scene's camera. Nil fields
// keep the scene's own value.
type CameraOverrides struct {
	Location    *core.Vec3
	FocalLength *float64
}

// Apply returns base with the set override fields replaced
func (o CameraOverrides) Apply(base CameraConfig) CameraConfig {
	if o.Location != nil {
		base.Location = *o.Location
	}
	if o.FocalLength != nil {
		base.FocalLength = *o.FocalLength
	}
	return base
}

// addGround adds a huge sphere that acts as a ground plane at y = -0.5
func addGround(b *Builder, mat *material.Material) error {
	return b.AddSphere(core.NewVec3(0, -1000.5, 0), 1000.0, mat)
}

// NewDefaultScene creates the reference scene: a magenta sphere, a large
// white mirror, a small blue mirror and a white ground
func NewDefaultScene(capacity int, overrides CameraOverrides) (*Scene, error) {
	cameraConfig := overrides.Apply(DefaultCameraConfig())
	b := NewBuilder("default", geometry.NewCamera(cameraConfig.Location, cameraConfig.FocalLength), capacity)
	if err := addDefaultShapes(b); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func addDefaultShapes(b *Builder) error {
	magenta := material.NewDiffuse(core.NewVec3(1.0, 0.05, 1.0), 1.0)
	whiteMirror := material.NewReflective(core.NewVec3(1.0, 1.0, 1.0), 1.0)
	blueMirror := material.NewReflective(core.NewVec3(0.4, 0.6, 1.0), 1.0)
	matteWhite := material.NewDiffuse(core.NewVec3(1.0, 1.0, 1.0), 0.0)

	if err := b.AddSphere(core.NewVec3(-2.0, 0.0, 1.0), 0.5, magenta); err != nil {
		return err
	}
	if err := b.AddSphere(core.NewVec3(1.0, 2.5, 0.0), 1.4, whiteMirror); err != nil {
		return err
	}
	if err := b.AddSphere(core.NewVec3(2.0, 0.5, 0.0), 0.5, blueMirror); err != nil {
		return err
	}
	return addGround(b, matteWhite)
}

// NewTriangleScene is the default scene plus a red triangle standing on the ground
func NewTriangleScene(capacity int, overrides CameraOverrides) (*Scene, error) {
	cameraConfig := overrides.Apply(DefaultCameraConfig())
	b := NewBuilder("triangle", geometry.NewCamera(cameraConfig.Location, cameraConfig.FocalLength), capacity)
	if err := addDefaultShapes(b); err != nil {
		return nil, err
	}

	red := material.NewDiffuse(core.NewVec3(1.0, 0.0, 0.0), 0.0)
	err := b.AddTriangle(
		core.NewVec3(0.5, 1.0, 0.0),
		core.NewVec3(1.0, -1.0, 0.0),
		core.NewVec3(-1.0, -1.0, 0.0),
		red,
	)
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// NewMirrorsScene places two mirror spheres facing each other so that rays
// bounce between them until the depth limit is reached
func NewMirrorsScene(capacity int, overrides CameraOverrides) (*Scene, error) {
	cameraConfig := overrides.Apply(DefaultCameraConfig())
	b := NewBuilder("mirrors", geometry.NewCamera(cameraConfig.Location, cameraConfig.FocalLength), capacity)

	silver := material.NewReflective(core.NewVec3(0.9, 0.9, 0.9), 1.0)
	gold := material.NewReflective(core.NewVec3(1.0, 0.8, 0.4), 0.5)
	green := material.NewDiffuse(core.NewVec3(0.2, 0.8, 0.3), 0.5)
	ground := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8), 0.0)

	if err := b.AddSphere(core.NewVec3(-1.6, 1.0, 0.0), 1.5, silver); err != nil {
		return nil, err
	}
	if err := b.AddSphere(core.NewVec3(1.6, 1.0, 0.0), 1.5, gold); err != nil {
		return nil, err
	}
	if err := b.AddSphere(core.NewVec3(0.0, 0.0, 3.0), 0.5, green); err != nil {
		return nil, err
	}
	if err := addGround(b, ground); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// NewClassicScene recreates the first-generation scene: two matte spheres on
// a blue ground, seen from a lower camera
func NewClassicScene(capacity int, overrides CameraOverrides) (*Scene, error) {
	base := CameraConfig{
		Location:    core.NewVec3(0, 0, 9.0),
		FocalLength: 3.0,
	}
	cameraConfig := overrides.Apply(base)
	b := NewBuilder("classic", geometry.NewCamera(cameraConfig.Location, cameraConfig.FocalLength), capacity)

	magenta := material.NewDiffuse(core.NewVec3(1.0, 0.0, 1.0), 0.0)
	cyan := material.NewDiffuse(core.NewVec3(0.0, 1.0, 1.0), 0.0)
	blue := material.NewDiffuse(core.NewVec3(0.1, 0.3, 1.0), 0.0)

	if err := b.AddSphere(core.NewVec3(-1.0, 0.0, 0.0), 0.5, magenta); err != nil {
		return nil, err
	}
	if err := b.AddSphere(core.NewVec3(1.0, 0.0, 4.0), 0.5, cyan); err != nil {
		return nil, err
	}
	if err := b.AddSphere(core.NewVec3(0.0, -1000.5, 0.0), 1000.0, blue); err != nil {
		return nil, err
	}
	return b.Build(), nil
}
