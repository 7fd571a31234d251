package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// MaxShininess is the Phong exponent used for mirror surfaces. Diffuse
// surfaces scale it by their specular coefficient.
const MaxShininess = 256.0

// Material describes how a surface responds to light.
// Materials are shared by pointer between shapes and never mutated after construction.
type Material struct {
	Albedo     core.Vec3 // Base reflectance color
	Specular   float64   // Specular highlight intensity in [0,1]
	Reflective bool      // Mirror surface: traces a reflection ray instead of diffuse shading
}

// NewDiffuse creates an opaque material lit with ambient, diffuse and specular terms
func NewDiffuse(albedo core.Vec3, specular float64) *Material {
	return &Material{
		Albedo:   albedo,
		Specular: clampSpecular(specular),
	}
}

// NewReflective creates a mirror material whose reflections are tinted by albedo
func NewReflective(albedo core.Vec3, specular float64) *Material {
	return &Material{
		Albedo:     albedo,
		Specular:   clampSpecular(specular),
		Reflective: true,
	}
}

// Shininess returns the specular exponent for this material
func (m *Material) Shininess() float64 {
	if m.Reflective {
		return MaxShininess
	}
	return MaxShininess * m.Specular
}

func clampSpecular(specular float64) float64 {
	return max(0.0, min(1.0, specular))
}
