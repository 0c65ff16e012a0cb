package tracer

import (
	"math"

	"github.com/achilleasa/whitted/scene"
	"github.com/achilleasa/whitted/types"
)

// Scan all scene primitives for the hit with the smallest distance. On exact
// ties the primitive that comes first in scene order wins.
func (fc *frameContext) findNearestIntersection(ray scene.Ray) (scene.Intersection, bool) {
	var closest scene.Intersection
	tClosest := float32(math.Inf(1))
	for index := 0; index < fc.scene.NumObjects(); index++ {
		hit, ok := fc.scene.Object(index).Intersect(ray)
		if ok && hit.Object != nil && hit.T < tClosest {
			tClosest = hit.T
			closest = hit
		}
	}

	return closest, closest.Hit()
}

// Check if another primitive blocks the light from reaching the hit point.
// The primitive that produced the hit is excluded by identity.
func (fc *frameContext) isInShadow(hit scene.Intersection, light scene.Light) bool {
	lightPos := light.Position()
	dirToLight := types.Direction(hit.Point, lightPos)
	if dirToLight.IsZero() {
		return false
	}

	shadowRay := scene.Ray{
		Origin: hit.Point.Add(hit.Normal.Mul(fc.cfg.ShadowBias)),
		Dir:    dirToLight,
	}
	distToLight := types.Distance(shadowRay.Origin, lightPos)

	for index := 0; index < fc.scene.NumObjects(); index++ {
		obj := fc.scene.Object(index)
		if obj == hit.Object {
			continue
		}
		if occlusion, ok := obj.Intersect(shadowRay); ok && occlusion.T < distToLight {
			return true
		}
	}
	return false
}
