package scene

import (
	"math"
	"testing"

	"github.com/achilleasa/whitted/types"
)

func approxVec(v1, v2 types.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(float64(v1[i]-v2[i])) > 1e-4 {
			return false
		}
	}
	return true
}

func TestPrimitiveIntersections(t *testing.T) {
	mat := DefaultMaterial()
	tri := NewTriangle([3]types.Vec3{
		types.XYZ(-1, -1, -3),
		types.XYZ(1, -1, -3),
		types.XYZ(0, 1, -3),
	}, mat)

	type spec struct {
		prim      Primitive
		ray       Ray
		expHit    bool
		expT      float32
		expNormal types.Vec3
	}
	specs := []spec{
		// sphere: outside, inside, behind, miss
		{NewSphere(types.XYZ(0, 0, -5), 1, mat), NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)), true, 4, types.XYZ(0, 0, 1)},
		{NewSphere(types.XYZ(0, 0, 0), 2, mat), NewRay(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0)), true, 2, types.XYZ(-1, 0, 0)},
		{NewSphere(types.XYZ(0, 0, 5), 1, mat), NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)), false, 0, types.Vec3{}},
		{NewSphere(types.XYZ(0, 5, -5), 1, mat), NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)), false, 0, types.Vec3{}},
		// plane: both sides, parallel, behind
		{NewPlane(types.XYZ(0, -2, 0), types.XYZ(0, 1, 0), mat), NewRay(types.XYZ(0, 0, 0), types.XYZ(0, -1, 0)), true, 2, types.XYZ(0, 1, 0)},
		{NewPlane(types.XYZ(0, 2, 0), types.XYZ(0, -1, 0), mat), NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0)), true, 2, types.XYZ(0, -1, 0)},
		{NewPlane(types.XYZ(0, 2, 0), types.XYZ(0, 1, 0), mat), NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0)), true, 2, types.XYZ(0, -1, 0)},
		{NewPlane(types.XYZ(0, -2, 0), types.XYZ(0, 1, 0), mat), NewRay(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0)), false, 0, types.Vec3{}},
		{NewPlane(types.XYZ(0, -2, 0), types.XYZ(0, 1, 0), mat), NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0)), false, 0, types.Vec3{}},
		// box: outside, inside, miss
		{NewBox(types.XYZ(1, 1, -4), types.XYZ(-1, -1, -6), mat), NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)), true, 4, types.XYZ(0, 0, 1)},
		{NewBox(types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1), mat), NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0)), true, 1, types.XYZ(0, -1, 0)},
		{NewBox(types.XYZ(-1, -1, -6), types.XYZ(1, 1, -4), mat), NewRay(types.XYZ(0, 3, 0), types.XYZ(0, 0, -1)), false, 0, types.Vec3{}},
		// triangle: front, back, outside
		{tri, NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)), true, 3, types.XYZ(0, 0, 1)},
		{tri, NewRay(types.XYZ(0, 0, -6), types.XYZ(0, 0, 1)), true, 3, types.XYZ(0, 0, -1)},
		{tri, NewRay(types.XYZ(2, 0, 0), types.XYZ(0, 0, -1)), false, 0, types.Vec3{}},
	}

	for index, s := range specs {
		hit, ok := s.prim.Intersect(s.ray)
		if ok != s.expHit {
			t.Fatalf("[spec %d] expected hit = %t; got %t", index, s.expHit, ok)
		}
		if !ok {
			continue
		}
		if math.Abs(float64(hit.T-s.expT)) > 1e-4 {
			t.Fatalf("[spec %d] expected t = %f; got %f", index, s.expT, hit.T)
		}
		if !approxVec(hit.Normal, s.expNormal) {
			t.Fatalf("[spec %d] expected normal %v; got %v", index, s.expNormal, hit.Normal)
		}
		if !approxVec(hit.Point, s.ray.At(hit.T)) {
			t.Fatalf("[spec %d] expected hit point to lie on the ray", index)
		}
		if hit.Object != s.prim {
			t.Fatalf("[spec %d] expected hit to reference the primitive", index)
		}
	}
}

func TestInvalidRaysNeverHit(t *testing.T) {
	mat := DefaultMaterial()
	ray := NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, 0))
	if ray.Valid() {
		t.Fatal("expected ray with zero direction to be invalid")
	}

	prims := []Primitive{
		NewSphere(types.XYZ(0, 0, 0), 1, mat),
		NewPlane(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0), mat),
		NewBox(types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1), mat),
		NewTriangle([3]types.Vec3{types.XYZ(-1, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0)}, mat),
	}
	for index, prim := range prims {
		if _, ok := prim.Intersect(ray); ok {
			t.Fatalf("[prim %d] expected invalid ray to miss %s", index, prim.Type())
		}
	}
}

func TestDegenerateTriangle(t *testing.T) {
	tri := NewTriangle([3]types.Vec3{types.XYZ(0, 0, -1), types.XYZ(1, 0, -1), types.XYZ(2, 0, -1)}, DefaultMaterial())
	if _, ok := tri.Intersect(NewRay(types.XYZ(1, 0, 0), types.XYZ(0, 0, -1))); ok {
		t.Fatal("expected collinear triangle to never report a hit")
	}
}

func TestPrimitiveTypes(t *testing.T) {
	mat := DefaultMaterial()
	type spec struct {
		prim     Primitive
		expType  string
		centroid types.Vec3
	}
	specs := []spec{
		{NewSphere(types.XYZ(1, 2, 3), 1, mat), "sphere", types.XYZ(1, 2, 3)},
		{NewPlane(types.XYZ(0, 1, 0), types.XYZ(0, 2, 0), mat), "plane", types.XYZ(0, 1, 0)},
		{NewBox(types.XYZ(0, 0, 0), types.XYZ(2, 4, 6), mat), "box", types.XYZ(1, 2, 3)},
		{NewTriangle([3]types.Vec3{types.XYZ(0, 0, 0), types.XYZ(3, 0, 0), types.XYZ(0, 3, 0)}, mat), "triangle", types.XYZ(1, 1, 0)},
	}

	for index, s := range specs {
		if got := s.prim.Type().String(); got != s.expType {
			t.Fatalf("[spec %d] expected type %q; got %q", index, s.expType, got)
		}
		if !approxVec(s.prim.Centroid(), s.centroid) {
			t.Fatalf("[spec %d] expected centroid %v; got %v", index, s.centroid, s.prim.Centroid())
		}
		if s.prim.Material() != mat {
			t.Fatalf("[spec %d] expected material to be preserved", index)
		}
	}
}
