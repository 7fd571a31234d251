package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestBuilder_CapacityExceeded(t *testing.T) {
	camera := geometry.NewCamera(core.NewVec3(0, 0, 5), 1.0)
	b := NewBuilder("test", camera, 2)
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1), 0)

	for i := 0; i < 2; i++ {
		if err := b.AddSphere(core.NewVec3(float64(i), 0, 0), 0.5, mat); err != nil {
			t.Fatalf("Unexpected error adding sphere %d: %v", i, err)
		}
	}

	err := b.AddSphere(core.NewVec3(5, 0, 0), 0.5, mat)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("Expected ErrCapacityExceeded, got %v", err)
	}

	s := b.Build()
	if len(s.Shapes) != 2 {
		t.Errorf("Expected 2 shapes after overflow, got %d", len(s.Shapes))
	}
	// The overflowing sphere must not replace an existing one
	if sphere := s.Shapes[1].(*geometry.Sphere); sphere.Center.X != 1 {
		t.Errorf("Expected second sphere to be unchanged, got center %v", sphere.Center)
	}
}

func TestBuilder_DefaultCapacity(t *testing.T) {
	b := NewBuilder("test", geometry.NewCamera(core.NewVec3(0, 0, 0), 1), 0)
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1), 0)

	for i := 0; i < DefaultCapacity; i++ {
		if err := b.AddSphere(core.NewVec3(float64(i), 0, 0), 0.1, mat); err != nil {
			t.Fatalf("Unexpected error adding sphere %d: %v", i, err)
		}
	}
	if err := b.AddSphere(core.NewVec3(0, 5, 0), 0.1, mat); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("Expected ErrCapacityExceeded past %d shapes, got %v", DefaultCapacity, err)
	}
}

func TestBuilder_InvalidShapes(t *testing.T) {
	b := NewBuilder("test", geometry.NewCamera(core.NewVec3(0, 0, 0), 1), 4)
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1), 0)

	tests := []struct {
		name     string
		add      func() error
		expected error
	}{
		{"zero radius", func() error { return b.AddSphere(core.NewVec3(0, 0, 0), 0, mat) }, ErrInvalidRadius},
		{"negative radius", func() error { return b.AddSphere(core.NewVec3(0, 0, 0), -1, mat) }, ErrInvalidRadius},
		{"nil material", func() error { return b.AddSphere(core.NewVec3(0, 0, 0), 1, nil) }, ErrNilMaterial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.add(); !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}

	if n := len(b.Build().Shapes); n != 0 {
		t.Errorf("Expected no shapes after rejected additions, got %d", n)
	}
}

func TestBuilder_SharedMaterialsRegisteredOnce(t *testing.T) {
	b := NewBuilder("test", geometry.NewCamera(core.NewVec3(0, 0, 0), 1), 8)
	shared := material.NewReflective(core.NewVec3(1, 1, 1), 1)
	other := material.NewDiffuse(core.NewVec3(1, 0, 0), 0)

	_ = b.AddSphere(core.NewVec3(0, 0, 0), 1, shared)
	_ = b.AddSphere(core.NewVec3(3, 0, 0), 1, shared)
	_ = b.AddTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), other)

	s := b.Build()
	if len(s.Materials) != 2 {
		t.Fatalf("Expected 2 materials, got %d", len(s.Materials))
	}
	if s.Shapes[0].(*geometry.Sphere).Material != s.Shapes[1].(*geometry.Sphere).Material {
		t.Error("Expected spheres to share the same material instance")
	}
}

func TestCreate_BuiltinScenes(t *testing.T) {
	tests := []struct {
		name           string
		expectedShapes int
	}{
		{"default", 4},
		{"triangle", 5},
		{"mirrors", 4},
		{"classic", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Create(tt.name, DefaultCapacity, CameraOverrides{})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.GetPrimitiveCount() != tt.expectedShapes {
				t.Errorf("Expected %d shapes, got %d", tt.expectedShapes, s.GetPrimitiveCount())
			}
			if s.GetCamera() == nil || s.GetCamera().FocalLength <= 0 {
				t.Errorf("Expected a camera with positive focal length, got %+v", s.GetCamera())
			}
		})
	}
}

func TestCreate_UnknownScene(t *testing.T) {
	s, err := Create("nonexistent", DefaultCapacity, CameraOverrides{})
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
	if s != nil {
		t.Errorf("Expected nil scene, got %+v", s)
	}
}

func TestCreate_CapacityTooSmall(t *testing.T) {
	if _, err := Create("default", 2, CameraOverrides{}); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("Expected ErrCapacityExceeded, got %v", err)
	}
}

func TestCreate_CameraOverrides(t *testing.T) {
	origin := core.NewVec3(0, 0, 0)
	s, err := Create("default", DefaultCapacity, CameraOverrides{Location: &origin})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.Camera.Location != origin {
		t.Errorf("Expected camera at %v, got %v", origin, s.Camera.Location)
	}
	if s.Camera.FocalLength != DefaultCameraConfig().FocalLength {
		t.Errorf("Expected default focal length to be kept, got %f", s.Camera.FocalLength)
	}
}

func TestListBuiltinScenes(t *testing.T) {
	scenes := ListBuiltinScenes()
	if len(scenes) != 4 {
		t.Fatalf("Expected 4 built-in scenes, got %d", len(scenes))
	}
	for i := 1; i < len(scenes); i++ {
		if scenes[i-1].ID >= scenes[i].ID {
			t.Errorf("Scenes not sorted: %q before %q", scenes[i-1].ID, scenes[i].ID)
		}
	}
}
