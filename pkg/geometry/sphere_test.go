package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func testMaterial() *material.Material {
	return material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5), 0.0)
}

func TestSphere_Hit_Analytic(t *testing.T) {
	mat := testMaterial()
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mat)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, Epsilon, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-4.0) > 1e-12 {
		t.Errorf("Expected t=4, got t=%f", hit.T)
	}
	if hit.Point != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected point (0,0,1), got %v", hit.Point)
	}
	if hit.Normal != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
	if hit.Material != mat {
		t.Error("Expected hit to reference the sphere's material")
	}
}

func TestSphere_Hit_UnnormalizedDirection(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())
	// Same ray as the analytic case with a direction of length 2
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -2))

	hit, isHit := sphere.Hit(ray, Epsilon, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-2.0) > 1e-12 {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}
	if math.Abs(hit.Normal.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"passes beside", core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))},
		{"sphere behind origin", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))},
		{"origin inside sphere", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, isHit := sphere.Hit(tt.ray, Epsilon, math.Inf(1)); isHit {
				t.Errorf("Expected miss, but got hit at t=%f", hit.T)
			}
		})
	}
}

func TestSphere_Hit_SelfIntersectionExcluded(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())

	// Rays spawned on the surface heading away from or tangent to the sphere
	origins := []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 1, 1).Normalize(),
		core.NewVec3(-0.6, 0.8, 0),
	}

	for _, origin := range origins {
		ray := core.NewRay(origin, origin)
		if hit, isHit := sphere.Hit(ray, Epsilon, math.Inf(1)); isHit {
			t.Errorf("Ray from surface point %v re-hit the sphere at t=%g", origin, hit.T)
		}
	}
}

func TestSphere_Hit_RespectsTMax(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	if _, isHit := sphere.Hit(ray, Epsilon, 4.0); isHit {
		t.Error("Expected miss when the root equals tMax")
	}
	if _, isHit := sphere.Hit(ray, Epsilon, 4.5); !isHit {
		t.Error("Expected hit when the root is below tMax")
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, Epsilon, math.Inf(1))
	if !isHit {
		t.Fatal("Expected tangent ray to hit")
	}
	if math.Abs(hit.T-2.0) > 1e-9 {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}
	if math.Abs(hit.Normal.X-1.0) > 1e-9 {
		t.Errorf("Expected normal (1,0,0), got %v", hit.Normal)
	}
}
