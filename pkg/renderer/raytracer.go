package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Lighting constants for the single directional light
const (
	AmbientFactor   = 0.3 // Fraction of albedo visible without direct light
	DefaultMaxDepth = 5   // Reflection bounces before the depth-limit color is returned
)

var (
	// LightDirection is the direction light travels in (from the light toward the scene)
	LightDirection = core.NewVec3(-1, -1, -1).Normalize()
	// HighlightColor tints specular highlights
	HighlightColor = core.NewVec3(0.5, 0.5, 0.5)
	// DepthLimitColor is returned when a reflection chain exceeds the depth budget
	DepthLimitColor = core.NewVec3(1, 1, 1)
	// BackgroundBottom and BackgroundTop are the endpoints of the sky gradient
	BackgroundBottom = core.NewVec3(1.5, 1.5, 1.0)
	BackgroundTop    = core.NewVec3(0.5, 0.5, 1.0)
)

// ShadingConfig contains shading configuration
type ShadingConfig struct {
	MaxDepth int // Maximum reflection depth
}

// DefaultShadingConfig returns sensible default values
func DefaultShadingConfig() ShadingConfig {
	return ShadingConfig{
		MaxDepth: DefaultMaxDepth,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *geometry.Camera
	GetShapes() []geometry.Shape
}

// RayCounters counts rays traced by a single Raytracer
type RayCounters struct {
	PrimaryRays    int
	ReflectionRays int
	ShadowRays     int
}

// Add returns the element-wise sum of two counters
func (c RayCounters) Add(other RayCounters) RayCounters {
	return RayCounters{
		PrimaryRays:    c.PrimaryRays + other.PrimaryRays,
		ReflectionRays: c.ReflectionRays + other.ReflectionRays,
		ShadowRays:     c.ShadowRays + other.ShadowRays,
	}
}

// Raytracer computes the color seen along a ray. Scene access is read-only;
// the only mutable state is the ray counters, so each goroutine needs its own
// Raytracer.
type Raytracer struct {
	scene    Scene
	config   ShadingConfig
	counters RayCounters
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, config ShadingConfig) *Raytracer {
	return &Raytracer{
		scene:  scene,
		config: config,
	}
}

// Counters returns the rays traced so far
func (rt *Raytracer) Counters() RayCounters {
	return rt.counters
}

// ResetCounters zeroes the ray counters
func (rt *Raytracer) ResetCounters() {
	rt.counters = RayCounters{}
}

// PixelColor returns the unclamped color of pixel (x, y) in a width×height image
func (rt *Raytracer) PixelColor(x, y, width, height int) core.Vec3 {
	rt.counters.PrimaryRays++
	ray := rt.scene.GetCamera().GetRay(x, y, width, height)
	return rt.RayColor(ray, rt.config.MaxDepth)
}

// RayColor returns the color for a given ray with at most depth reflection levels
func (rt *Raytracer) RayColor(r core.Ray, depth int) core.Vec3 {
	if depth <= 0 {
		return DepthLimitColor
	}

	hit, isHit := rt.hitWorld(r, geometry.Epsilon, math.Inf(1))
	if !isHit {
		return backgroundGradient(r)
	}

	return rt.shade(r, hit, depth)
}

// hitWorld returns the nearest hit. A later shape at exactly the same
// distance does not replace an earlier one.
func (rt *Raytracer) hitWorld(r core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
	var closestHit *geometry.HitRecord
	closestSoFar := tMax

	for _, shape := range rt.scene.GetShapes() {
		if hit, isHit := shape.Hit(r, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// occluded reports whether anything lies along the ray
func (rt *Raytracer) occluded(r core.Ray) bool {
	rt.counters.ShadowRays++
	for _, shape := range rt.scene.GetShapes() {
		if _, isHit := shape.Hit(r, geometry.Epsilon, math.Inf(1)); isHit {
			return true
		}
	}
	return false
}

// shade computes local illumination and reflection at a hit point.
// In shadow, diffuse and specular are both dropped: a shadowed diffuse surface
// shows its ambient term only and a shadowed mirror shows its reflection only.
func (rt *Raytracer) shade(r core.Ray, hit *geometry.HitRecord, depth int) core.Vec3 {
	mat := hit.Material
	toLight := LightDirection.Negate()
	inShadow := rt.occluded(core.NewRay(hit.Point, toLight))

	var color core.Vec3
	if mat.Reflective {
		color = rt.calculateReflectedColor(r, hit, depth)
	} else {
		color = mat.Albedo.Multiply(AmbientFactor)
		if !inShadow {
			diffuse := math.Max(hit.Normal.Dot(toLight), 0.0)
			color = color.Add(mat.Albedo.Multiply(diffuse * (1.0 - AmbientFactor)))
		}
	}

	if !inShadow {
		color = color.Add(calculateSpecular(r, hit))
	}
	return color
}

// calculateReflectedColor traces the mirror ray and tints it by the albedo
func (rt *Raytracer) calculateReflectedColor(r core.Ray, hit *geometry.HitRecord, depth int) core.Vec3 {
	rt.counters.ReflectionRays++
	reflected := core.NewRay(hit.Point, r.Direction.Normalize().Reflect(hit.Normal))
	return rt.RayColor(reflected, depth-1).MultiplyVec(hit.Material.Albedo)
}

// calculateSpecular returns the Phong highlight of the light seen from the ray origin
func calculateSpecular(r core.Ray, hit *geometry.HitRecord) core.Vec3 {
	mat := hit.Material
	viewDir := r.Origin.Subtract(hit.Point).Normalize()
	reflection := LightDirection.Reflect(hit.Normal)
	spec := math.Pow(math.Max(viewDir.Dot(reflection), 0.0), mat.Shininess())
	return HighlightColor.Multiply(spec * mat.Specular)
}

// backgroundGradient blends the sky colors by the raw vertical component of
// the ray direction
func backgroundGradient(r core.Ray) core.Vec3 {
	a := r.Direction.Y*0.5 + 0.5
	return BackgroundBottom.Multiply(1.0 - a).Add(BackgroundTop.Multiply(a))
}
