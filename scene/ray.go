package scene

import "github.com/achilleasa/whitted/types"

// A ray with a world-space origin and a unit direction.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
}

// Create a new ray. The direction is normalized; a zero direction yields an
// invalid ray that no primitive reports a hit for.
func NewRay(origin, dir types.Vec3) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir.Normalize(),
	}
}

// Returns true if the ray has a usable direction.
func (r Ray) Valid() bool {
	return !r.Dir.IsZero()
}

// Get the point at distance t along the ray.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Intersection describes the nearest contact of a ray with a primitive.
// A zero Intersection (nil Object) means that nothing was hit.
type Intersection struct {
	// Parametric distance along the ray.
	T float32

	// World-space hit point.
	Point types.Vec3

	// Unit surface normal facing the side the ray arrived from.
	Normal types.Vec3

	// The primitive that was hit.
	Object Primitive
}

// Returns true if the intersection references a primitive.
func (in Intersection) Hit() bool {
	return in.Object != nil
}

// Orient the outward normal so that it faces the incoming ray.
func faceForward(ray Ray, outwardNormal types.Vec3) types.Vec3 {
	if ray.Dir.Dot(outwardNormal) > 0 {
		return outwardNormal.Neg()
	}
	return outwardNormal
}
