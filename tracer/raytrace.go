package tracer

import (
	"github.com/achilleasa/whitted/scene"
	"github.com/achilleasa/whitted/types"
)

// Compute the color seen along a ray. Reflective surfaces spawn a mirror ray
// that is traced with depth+1; recursion stops with black once depth reaches
// the configured maximum.
func (fc *frameContext) traceRay(ray scene.Ray, depth uint32, ws *WorkerStats) types.Color {
	if depth >= fc.cfg.MaxReflections {
		return types.Black
	}

	hit, found := fc.findNearestIntersection(ray)
	if !found {
		return fc.cfg.BackgroundColor
	}
	mat := hit.Object.Material()

	reflectedColor := types.Black
	if mat.Reflectivity > 0 {
		ws.ReflectionRays++
		reflectedColor = fc.traceRay(fc.reflectRay(ray, hit), depth+1, ws)
	}

	localColor := mat.Ambient
	for index := 0; index < fc.scene.NumLights(); index++ {
		light := fc.scene.Light(index)
		ws.ShadowRays++
		if fc.isInShadow(hit, light) {
			localColor = localColor.Add(fc.cfg.ShadowColor)
			continue
		}
		localColor = localColor.Add(fc.lightContribution(hit, light))
	}

	return localColor.Scale(mat.Intrinsic).Add(reflectedColor.Scale(mat.Reflectivity))
}

// Mirror the incoming ray about the surface normal. The origin is pushed
// along the reflected direction so the bounce does not re-hit its own surface.
func (fc *frameContext) reflectRay(ray scene.Ray, hit scene.Intersection) scene.Ray {
	dir := ray.Dir.Sub(hit.Normal.Mul(2 * ray.Dir.Dot(hit.Normal))).Normalize()
	return scene.Ray{
		Origin: hit.Point.Add(dir.Mul(fc.cfg.ReflectionBias)),
		Dir:    dir,
	}
}
