package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultCapacity is the maximum number of shapes a scene holds unless the
// builder is configured otherwise
const DefaultCapacity = 32

var (
	// ErrCapacityExceeded is returned when adding a shape to a full scene
	ErrCapacityExceeded = errors.New("scene capacity exceeded")
	// ErrInvalidRadius is returned for spheres with a non-positive radius
	ErrInvalidRadius = errors.New("sphere radius must be positive")
	// ErrNilMaterial is returned when a shape is added without a material
	ErrNilMaterial = errors.New("shape has no material")
)

// Scene contains all the elements needed for rendering.
// A scene is read-only once built.
type Scene struct {
	Name      string
	Camera    *geometry.Camera
	Shapes    []geometry.Shape     // Objects in the scene, in insertion order
	Materials []*material.Material // Materials referenced by Shapes
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera { return s.Camera }

// GetShapes returns the scene shapes in insertion order
func (s *Scene) GetShapes() []geometry.Shape { return s.Shapes }

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int { return len(s.Shapes) }

// Builder assembles a Scene with a bounded number of shapes
type Builder struct {
	scene    *Scene
	capacity int
	seen     map[*material.Material]bool
}

// NewBuilder creates a builder for a scene holding at most capacity shapes.
// A non-positive capacity selects DefaultCapacity.
func NewBuilder(name string, camera *geometry.Camera, capacity int) *Builder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Builder{
		scene: &Scene{
			Name:   name,
			Camera: camera,
			Shapes: make([]geometry.Shape, 0, capacity),
		},
		capacity: capacity,
		seen:     make(map[*material.Material]bool),
	}
}

// AddSphere adds a sphere to the scene
func (b *Builder) AddSphere(center core.Vec3, radius float64, mat *material.Material) error {
	if radius <= 0 {
		return fmt.Errorf("sphere %d at %v: %w", len(b.scene.Shapes), center, ErrInvalidRadius)
	}
	return b.add(geometry.NewSphere(center, radius, mat), mat)
}

// AddTriangle adds a flat-shaded triangle to the scene
func (b *Builder) AddTriangle(v0, v1, v2 core.Vec3, mat *material.Material) error {
	return b.add(geometry.NewTriangle(v0, v1, v2, mat), mat)
}

// AddShape adds an arbitrary shape that uses mat
func (b *Builder) AddShape(shape geometry.Shape, mat *material.Material) error {
	return b.add(shape, mat)
}

func (b *Builder) add(shape geometry.Shape, mat *material.Material) error {
	index := len(b.scene.Shapes)
	if mat == nil {
		return fmt.Errorf("shape %d: %w", index, ErrNilMaterial)
	}
	if index >= b.capacity {
		return fmt.Errorf("shape %d (capacity %d): %w", index, b.capacity, ErrCapacityExceeded)
	}

	if !b.seen[mat] {
		b.seen[mat] = true
		b.scene.Materials = append(b.scene.Materials, mat)
	}
	b.scene.Shapes = append(b.scene.Shapes, shape)
	return nil
}

// Build returns the assembled scene
func (b *Builder) Build() *Scene {
	return b.scene
}
