package scene

import (
	"math"

	"github.com/achilleasa/whitted/types"
)

// Ray/surface denominators below this value are treated as parallel.
const parallelEpsilon = 1e-7

type PrimitiveType uint32

const (
	PlanePrimitive PrimitiveType = iota
	SpherePrimitive
	BoxPrimitive
	TrianglePrimitive
)

func (pt PrimitiveType) String() string {
	switch pt {
	case PlanePrimitive:
		return "plane"
	case SpherePrimitive:
		return "sphere"
	case BoxPrimitive:
		return "box"
	case TrianglePrimitive:
		return "triangle"
	}
	return "unknown"
}

// The Primitive interface is implemented by all scene geometry.
type Primitive interface {
	// Intersect the primitive with a ray. Only hits with T >= 0 are
	// reported; the returned normal faces the incoming ray.
	Intersect(ray Ray) (Intersection, bool)

	// The primitive material.
	Material() *Material

	// The primitive centroid.
	Centroid() types.Vec3

	// The primitive type.
	Type() PrimitiveType
}

// A sphere primitive.
type Sphere struct {
	Center types.Vec3
	Radius float32
	mat    *Material
}

// Create new sphere primitive.
func NewSphere(center types.Vec3, radius float32, material *Material) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		mat:    material,
	}
}

func (s *Sphere) Material() *Material  { return s.mat }
func (s *Sphere) Centroid() types.Vec3 { return s.Center }
func (s *Sphere) Type() PrimitiveType  { return SpherePrimitive }

// Intersect sphere with ray.
func (s *Sphere) Intersect(ray Ray) (Intersection, bool) {
	if !ray.Valid() {
		return Intersection{}, false
	}

	// The ray direction is unit length so the quadratic's a term is 1
	oc := ray.Origin.Sub(s.Center)
	halfB := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	discriminant := halfB*halfB - c
	if discriminant < 0 {
		return Intersection{}, false
	}

	sqrtD := float32(math.Sqrt(float64(discriminant)))
	t := -halfB - sqrtD
	if t < 0 {
		t = -halfB + sqrtD
		if t < 0 {
			return Intersection{}, false
		}
	}

	point := ray.At(t)
	return Intersection{
		T:      t,
		Point:  point,
		Normal: faceForward(ray, point.Sub(s.Center).Mul(1.0/s.Radius)),
		Object: s,
	}, true
}

// An infinite plane defined by a point and a normal.
type Plane struct {
	Point  types.Vec3
	Normal types.Vec3
	mat    *Material
}

// Create new plane primitive.
func NewPlane(point, normal types.Vec3, material *Material) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal.Normalize(),
		mat:    material,
	}
}

func (p *Plane) Material() *Material  { return p.mat }
func (p *Plane) Centroid() types.Vec3 { return p.Point }
func (p *Plane) Type() PrimitiveType  { return PlanePrimitive }

// Intersect plane with ray.
func (p *Plane) Intersect(ray Ray) (Intersection, bool) {
	denom := ray.Dir.Dot(p.Normal)
	if !ray.Valid() || float32(math.Abs(float64(denom))) < parallelEpsilon {
		return Intersection{}, false
	}

	t := p.Point.Sub(ray.Origin).Dot(p.Normal) / denom
	if t < 0 {
		return Intersection{}, false
	}

	return Intersection{
		T:      t,
		Point:  ray.At(t),
		Normal: faceForward(ray, p.Normal),
		Object: p,
	}, true
}

// An axis-aligned box.
type Box struct {
	Min types.Vec3
	Max types.Vec3
	mat *Material
}

// Create new box primitive from two opposite corners.
func NewBox(corner1, corner2 types.Vec3, material *Material) *Box {
	return &Box{
		Min: types.MinVec3(corner1, corner2),
		Max: types.MaxVec3(corner1, corner2),
		mat: material,
	}
}

func (b *Box) Material() *Material  { return b.mat }
func (b *Box) Centroid() types.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }
func (b *Box) Type() PrimitiveType  { return BoxPrimitive }

// Intersect box with ray using the slab method.
func (b *Box) Intersect(ray Ray) (Intersection, bool) {
	if !ray.Valid() {
		return Intersection{}, false
	}

	tNear := float32(math.Inf(-1))
	tFar := float32(math.Inf(1))
	nearAxis, farAxis := 0, 0
	for axis := 0; axis < 3; axis++ {
		if ray.Dir[axis] == 0 {
			if ray.Origin[axis] < b.Min[axis] || ray.Origin[axis] > b.Max[axis] {
				return Intersection{}, false
			}
			continue
		}

		invD := 1.0 / ray.Dir[axis]
		t0 := (b.Min[axis] - ray.Origin[axis]) * invD
		t1 := (b.Max[axis] - ray.Origin[axis]) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear, nearAxis = t0, axis
		}
		if t1 < tFar {
			tFar, farAxis = t1, axis
		}
		if tNear > tFar {
			return Intersection{}, false
		}
	}

	t, axis := tNear, nearAxis
	if t < 0 {
		// Ray starts inside the box
		t, axis = tFar, farAxis
		if t < 0 {
			return Intersection{}, false
		}
	}

	point := ray.At(t)
	var outward types.Vec3
	if point[axis]-b.Min[axis] < b.Max[axis]-point[axis] {
		outward[axis] = -1
	} else {
		outward[axis] = 1
	}

	return Intersection{
		T:      t,
		Point:  point,
		Normal: faceForward(ray, outward),
		Object: b,
	}, true
}

// A single triangle.
type Triangle struct {
	Vertices [3]types.Vec3
	normal   types.Vec3
	mat      *Material
}

// Create new triangle primitive. The geometric normal follows the
// counter-clockwise winding of the vertices.
func NewTriangle(vertices [3]types.Vec3, material *Material) *Triangle {
	e1 := vertices[1].Sub(vertices[0])
	e2 := vertices[2].Sub(vertices[0])
	return &Triangle{
		Vertices: vertices,
		normal:   e1.Cross(e2).Normalize(),
		mat:      material,
	}
}

func (tri *Triangle) Material() *Material { return tri.mat }
func (tri *Triangle) Type() PrimitiveType { return TrianglePrimitive }

func (tri *Triangle) Centroid() types.Vec3 {
	return tri.Vertices[0].Add(tri.Vertices[1]).Add(tri.Vertices[2]).Mul(1.0 / 3.0)
}

// Intersect triangle with ray (Möller-Trumbore).
func (tri *Triangle) Intersect(ray Ray) (Intersection, bool) {
	if !ray.Valid() || tri.normal.IsZero() {
		return Intersection{}, false
	}

	edge1 := tri.Vertices[1].Sub(tri.Vertices[0])
	edge2 := tri.Vertices[2].Sub(tri.Vertices[0])
	h := ray.Dir.Cross(edge2)
	det := edge1.Dot(h)
	if float32(math.Abs(float64(det))) < parallelEpsilon {
		return Intersection{}, false
	}

	invDet := 1.0 / det
	s := ray.Origin.Sub(tri.Vertices[0])
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return Intersection{}, false
	}

	q := s.Cross(edge1)
	v := invDet * ray.Dir.Dot(q)
	if v < 0 || u+v > 1 {
		return Intersection{}, false
	}

	t := invDet * edge2.Dot(q)
	if t < 0 {
		return Intersection{}, false
	}

	return Intersection{
		T:      t,
		Point:  ray.At(t),
		Normal: faceForward(ray, tri.normal),
		Object: tri,
	}, true
}
