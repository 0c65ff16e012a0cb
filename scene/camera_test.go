package scene

import (
	"math"
	"testing"

	"github.com/achilleasa/whitted/types"
)

func TestCameraViewportRoundTrip(t *testing.T) {
	type spec struct {
		eye, target types.Vec3
		fov, aspect float32
	}
	specs := []spec{
		{types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), 60, 1},
		{types.XYZ(0, 3, 8), types.XYZ(0, 0.75, 0), 55, 4.0 / 3.0},
		{types.XYZ(0, 100, 0), types.XYZ(0, 50, 0), 110, 1},
		{types.XYZ(-5, 2, 1), types.XYZ(4, -1, 3), 45, 16.0 / 9.0},
	}

	for index, s := range specs {
		cam := NewCamera(s.fov)
		cam.SetupProjection(s.aspect)
		cam.Look(s.eye, s.target)

		for _, uv := range [][2]float32{{0.5, 0.5}, {0.1, 0.9}, {0.75, 0.25}, {0, 0}, {1, 1}} {
			world := cam.ViewportToWorld(uv[0], uv[1], cam.NearClip()*3)
			u, v := cam.WorldToViewport(world)
			if math.Abs(float64(u-uv[0])) > 1e-3 || math.Abs(float64(v-uv[1])) > 1e-3 {
				t.Fatalf("[spec %d] expected viewport coords %v; got (%f, %f)", index, uv, u, v)
			}
		}
	}
}

func TestCameraCenterRay(t *testing.T) {
	cam := NewCamera(60)
	cam.Look(types.XYZ(1, 2, 3), types.XYZ(1, 2, -7))

	center := cam.ViewportToWorld(0.5, 0.5, 2)
	if !approxVec(center, types.XYZ(1, 2, 1)) {
		t.Fatalf("expected viewport center at (1, 2, 1); got %v", center)
	}

	// Row 0 is the bottom of the viewport
	bottom := cam.ViewportToWorld(0.5, 0, 1)
	top := cam.ViewportToWorld(0.5, 1, 1)
	if bottom[1] >= top[1] {
		t.Fatalf("expected v = 0 below v = 1; got %v and %v", bottom, top)
	}
	halfH := float32(math.Tan(math.Pi / 6))
	if math.Abs(float64(top[1]-2-halfH)) > 1e-4 {
		t.Fatalf("expected top edge at %f above the eye; got %f", halfH, top[1]-2)
	}
}

func TestCameraDegenerateSetup(t *testing.T) {
	cam := NewCamera(60)
	cam.Up = types.Vec3{}
	cam.Look(types.XYZ(1, 1, 1), types.XYZ(1, 1, 1))

	p := cam.ViewportToWorld(0.5, 0.5, 1)
	for i := 0; i < 3; i++ {
		if math.IsNaN(float64(p[i])) || math.IsInf(float64(p[i]), 0) {
			t.Fatalf("expected finite viewport point; got %v", p)
		}
	}
	if !approxVec(p, types.XYZ(1, 1, 0)) {
		t.Fatalf("expected camera to fall back to looking down -Z; got %v", p)
	}
}
