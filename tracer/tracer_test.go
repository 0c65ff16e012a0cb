package tracer

import (
	"math"
	"testing"

	"github.com/achilleasa/whitted/scene"
	"github.com/achilleasa/whitted/types"
)

func TestMissReturnsBackground(t *testing.T) {
	bg := types.RGB(0.1, 0.2, 0.3)
	tr := New(NumWorkers(1))
	tr.SetBackgroundColor(bg)

	mat := newMaterial(types.White, types.White, types.White, 8, 1, 0)
	sc := buildScene(
		[]scene.Primitive{scene.NewSphere(types.XYZ(0, 0, -5), 1, mat)},
		[]scene.Light{scene.NewPointLight(types.XYZ(0, 5, 0))},
	)

	rays := []scene.Ray{
		scene.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1)),
		scene.NewRay(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0)),
		scene.NewRay(types.XYZ(0, 3, 0), types.XYZ(0, 0, -1)),
	}
	for index, ray := range rays {
		if got := tr.TraceRay(originCamera(), sc, ray); got != bg {
			t.Fatalf("[ray %d] expected background %v; got %v", index, bg, got)
		}
	}
}

func TestZeroMaxReflectionsExcludesReflection(t *testing.T) {
	mirror := newMaterial(types.RGB(0.2, 0.2, 0.2), types.White, types.White, 8, 1, 1)
	sc := buildScene(
		[]scene.Primitive{scene.NewSphere(types.XYZ(0, 0, -5), 1, mirror)},
		nil,
	)
	ray := scene.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))

	type spec struct {
		maxReflections uint32
		exp            types.Color
	}
	specs := []spec{
		// Recursion stops before anything is evaluated
		{0, types.Black},
		// The primary hit is shaded but its reflection is cut off
		{1, types.RGB(0.2, 0.2, 0.2)},
		// The reflection escapes towards the background
		{2, types.RGB(0.2, 0.2, 0.2).Add(types.RGB(1, 0, 0))},
	}

	for index, s := range specs {
		tr := New(NumWorkers(1))
		tr.SetBackgroundColor(types.RGB(1, 0, 0))
		tr.SetMaxReflections(s.maxReflections)
		if got := tr.TraceRay(originCamera(), sc, ray); !got.ApproxEqual(s.exp, colorEpsilon) {
			t.Fatalf("[spec %d] expected color %v; got %v", index, s.exp, got)
		}
	}
}

func TestReflectionRecursionIsBounded(t *testing.T) {
	mirror := newMaterial(types.Black, types.Black, types.Black, 1, 0, 1)
	// Two parallel mirrors facing each other bounce a ray forever
	sc := buildScene(
		[]scene.Primitive{
			scene.NewPlane(types.XYZ(0, 0, -5), types.XYZ(0, 0, 1), mirror),
			scene.NewPlane(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1), mirror),
		},
		nil,
	)

	for _, maxReflections := range []uint32{1, 2, 5, 16} {
		cfg := DefaultConfig()
		cfg.MaxReflections = maxReflections
		fc := testFrameContext(cfg, originCamera(), sc)

		ws := &WorkerStats{}
		got := fc.traceRay(scene.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)), 0, ws)
		if got != types.Black {
			t.Fatalf("[max %d] expected black; got %v", maxReflections, got)
		}
		if ws.ReflectionRays != uint64(maxReflections) {
			t.Fatalf("[max %d] expected %d reflection rays; got %d", maxReflections, maxReflections, ws.ReflectionRays)
		}
	}
}

func TestNonReflectiveSurfacesDoNotRecurse(t *testing.T) {
	matte := newMaterial(types.Gray, types.White, types.White, 8, 1, 0)
	sc := buildScene(
		[]scene.Primitive{scene.NewSphere(types.XYZ(0, 0, -5), 1, matte)},
		[]scene.Light{scene.NewPointLight(types.XYZ(0, 0, 5))},
	)
	fc := testFrameContext(DefaultConfig(), originCamera(), sc)

	ws := &WorkerStats{}
	fc.traceRay(scene.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)), 0, ws)
	if ws.ReflectionRays != 0 {
		t.Fatalf("expected no reflection rays; got %d", ws.ReflectionRays)
	}
}

func TestReflectRay(t *testing.T) {
	fc := testFrameContext(DefaultConfig(), originCamera(), scene.NewScene())

	ray := scene.NewRay(types.XYZ(0, 1, 0), types.XYZ(1, -1, 0))
	hit := scene.Intersection{
		T:      float32(math.Sqrt2),
		Point:  types.XYZ(1, 0, 0),
		Normal: types.XYZ(0, 1, 0),
	}

	reflected := fc.reflectRay(ray, hit)
	expDir := types.XYZ(1, 1, 0).Normalize()
	for i := 0; i < 3; i++ {
		if math.Abs(float64(reflected.Dir[i]-expDir[i])) > 1e-6 {
			t.Fatalf("expected reflected dir %v; got %v", expDir, reflected.Dir)
		}
	}

	// Origin must be offset along the reflected direction
	expOrigin := hit.Point.Add(expDir.Mul(DefaultReflectionBias))
	if types.Distance(reflected.Origin, expOrigin) > 1e-6 {
		t.Fatalf("expected reflected origin %v; got %v", expOrigin, reflected.Origin)
	}
	if reflected.Dir.Dot(hit.Normal) <= 0 {
		t.Fatal("expected reflected ray to leave the surface")
	}
}

func TestTraceRayIsIdempotent(t *testing.T) {
	sc, err := scene.Builtin("shadows")
	if err != nil {
		t.Fatal(err)
	}
	cam := sc.Cameras[0]
	tr := New(NumWorkers(1))

	for _, target := range []types.Vec3{
		types.XYZ(0, 0.75, 0),
		types.XYZ(-1.5, 1, 0),
		types.XYZ(1.5, 0.2, 1),
		types.XYZ(3, 0, -3),
	} {
		ray := scene.NewRay(cam.Position(), types.Direction(cam.Position(), target))
		first := tr.TraceRay(cam, sc, ray)
		second := tr.TraceRay(cam, sc, ray)
		if first != second {
			t.Fatalf("expected identical colors for repeated trace; got %v and %v", first, second)
		}
	}
}

func TestConfigSetters(t *testing.T) {
	tr := New()
	if tr.Config() != DefaultConfig() {
		t.Fatalf("expected default config; got %s", tr.Config())
	}

	tr.SetShadowColor(types.RGB(0.1, 0.1, 0.1))
	tr.SetBackgroundColor(types.RGB(0.2, 0.3, 0.4))
	tr.SetShadowBias(0.5)
	tr.SetReflectionBias(0.25)
	tr.SetMaxReflections(7)
	tr.SetLegacyHalfway(true)

	exp := Config{
		ShadowColor:     types.RGB(0.1, 0.1, 0.1),
		BackgroundColor: types.RGB(0.2, 0.3, 0.4),
		ShadowBias:      0.5,
		ReflectionBias:  0.25,
		MaxReflections:  7,
		LegacyHalfway:   true,
	}
	if got := tr.Config(); got != exp {
		t.Fatalf("expected config %s; got %s", exp, got)
	}

	expStr := "Tracer(shadow-color: (0.100, 0.100, 0.100), background-color: (0.200, 0.300, 0.400), shadow-bias: 0.5, reflection-bias: 0.25, max-num-reflections: 7, legacy-halfway: true)"
	if tr.String() != expStr {
		t.Fatalf("expected string %q; got %q", expStr, tr.String())
	}
}
