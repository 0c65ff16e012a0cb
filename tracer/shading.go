package tracer

import (
	"math"

	"github.com/achilleasa/whitted/scene"
	"github.com/achilleasa/whitted/types"
)

// Diffuse and specular contribution of an unoccluded light, scaled by the
// light intensity at the hit point. A light sitting on the surface has no
// direction and contributes nothing.
func (fc *frameContext) lightContribution(hit scene.Intersection, light scene.Light) types.Color {
	dirToLight := types.Direction(hit.Point, light.Position())
	if dirToLight.IsZero() {
		return types.Black
	}

	diffuse := fc.diffuseColor(hit, dirToLight)
	specular := fc.specularColor(hit, light, dirToLight)
	return light.IntensityAtPoint(hit.Point).Mul(diffuse.Add(specular))
}

// Lambertian term.
func (fc *frameContext) diffuseColor(hit scene.Intersection, dirToLight types.Vec3) types.Color {
	strength := float32(math.Max(0, float64(hit.Normal.Dot(dirToLight))))
	return hit.Object.Material().Diffuse.Scale(strength)
}

// Blinn-Phong half-vector term.
func (fc *frameContext) specularColor(hit scene.Intersection, light scene.Light, dirToLight types.Vec3) types.Color {
	dirToCam := types.Direction(hit.Point, fc.eye)
	if dirToCam.IsZero() {
		return types.Black
	}

	var halfway types.Vec3
	if fc.cfg.LegacyHalfway {
		halfway = dirToCam.Add(light.Position()).Normalize()
	} else {
		halfway = dirToCam.Add(dirToLight).Normalize()
	}

	mat := hit.Object.Material()
	strength := math.Max(0, float64(hit.Normal.Dot(halfway)))
	return mat.Specular.Scale(float32(math.Pow(strength, float64(mat.Shininess))))
}
