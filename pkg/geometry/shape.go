package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Epsilon is the minimum ray parameter accepted as a hit. Rays spawned from a
// surface (shadow and reflection rays) must not re-hit that surface at t≈0.
const Epsilon = 1e-7

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    core.Vec3          // Point of intersection
	Normal   core.Vec3          // Unit surface normal at intersection
	T        float64            // Parameter t along the ray
	Material *material.Material // Material of the surface that was hit
}

// Shape interface for objects that can be hit by rays.
// A hit is reported only for tMin < t < tMax.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)
}
